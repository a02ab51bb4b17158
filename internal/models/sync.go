package models

import (
	"encoding/json"
	"time"
)

// Operation classifies a queued mutation. Deletions travel as data: the
// payload of a delete entry is the tombstoned record, there is no separate
// delete wire operation.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// SyncItem is one entry of the local outbox. Entries are appended exactly
// once per successful mutation and afterwards only SyncedAt and Error are
// ever touched; nothing removes them in normal operation.
type SyncItem struct {
	ID        string          `json:"id"`
	Entity    EntityKind      `json:"entity"`
	EntityID  string          `json:"entityId"`
	Operation Operation       `json:"operation"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
	SyncedAt  *time.Time      `json:"syncedAt"`
	Error     *string         `json:"error"`
}

// Pending reports whether the item still awaits a successful push.
func (s *SyncItem) Pending() bool { return s.SyncedAt == nil }
