// Package wire defines the contract shared by the client sync engine, the
// relay HTTP surface, and every snapshot transport (file export, relay pull,
// S3 backup). One snapshot schema, one change tuple, one version string.
package wire

import (
	"encoding/json"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

// SnapshotVersion is the only snapshot schema version currently recognized.
// The field is reserved for future schema evolution.
const SnapshotVersion = "1.0"

// Change is one replicated mutation. Timestamp is the record's updatedAt at
// the moment the change was produced; the relay keeps whichever payload
// carries the greater timestamp.
type Change struct {
	Entity    models.EntityKind `json:"entity"`
	EntityID  string            `json:"entityId"`
	Operation models.Operation  `json:"operation"`
	Payload   json.RawMessage   `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

// PushRequest is the body of POST /push.
type PushRequest struct {
	Changes []Change `json:"changes"`
}

// PushResponse reports how many changes the relay applied and how many it
// dropped (missing fields, unknown kind, or stale timestamp).
type PushResponse struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// Snapshot is the versioned bundle produced by export and by GET /pull.
// Tombstoned records are included so a restore preserves trash state; audio
// and purely local bookkeeping tables are not part of it.
type Snapshot struct {
	Version               string                       `json:"version"`
	ExportedAt            time.Time                    `json:"exportedAt"`
	Meetings              []models.Meeting             `json:"meetings"`
	Stakeholders          []models.Stakeholder         `json:"stakeholders"`
	StakeholderCategories []models.StakeholderCategory `json:"stakeholderCategories"`
	Transcripts           []models.Transcript          `json:"transcripts"`
	MeetingAnalyses       []models.MeetingAnalysis     `json:"meetingAnalyses"`
}

// StatusResponse is the body of GET /status: row counts per entity kind and
// the most recent updated_at across all relay rows (zero when empty).
type StatusResponse struct {
	Counts        map[models.EntityKind]int `json:"counts"`
	LastUpdatedAt *time.Time                `json:"lastUpdatedAt"`
}
