// Package models defines the domain records MinuteKeeper stores locally and
// replicates through the relay.
//
// Every replicated record carries an opaque caller-generated id, wall-clock
// createdAt/updatedAt stamps, and a nullable deletedAt tombstone. A record is
// "active" exactly when DeletedAt is nil; list and lookup operations default
// to active records and soft-deleted rows are only visible through the trash
// views. Conflict resolution everywhere is last-write-wins on UpdatedAt at
// whole-record granularity.
package models

import "time"

// EntityKind identifies a replicated record kind. The set is closed: the
// relay rejects changes for kinds it does not know, and the import merge
// only understands these five.
type EntityKind string

const (
	KindMeeting     EntityKind = "meeting"
	KindStakeholder EntityKind = "stakeholder"
	KindCategory    EntityKind = "stakeholder_category"
	KindTranscript  EntityKind = "transcript"
	KindAnalysis    EntityKind = "meeting_analysis"
)

// Kinds returns all replicated entity kinds.
func Kinds() []EntityKind {
	return []EntityKind{KindMeeting, KindStakeholder, KindCategory, KindTranscript, KindAnalysis}
}

// Valid reports whether k is one of the known replicated kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindMeeting, KindStakeholder, KindCategory, KindTranscript, KindAnalysis:
		return true
	}
	return false
}

// Meeting is the central record; it references stakeholders by id and is the
// parent of transcripts, analyses, and local audio recordings.
type Meeting struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Date           string     `json:"date,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	StakeholderIDs []string   `json:"stakeholderIds"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt"`
}

// Stakeholder is a person appearing in meetings; it references categories by id.
type Stakeholder struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role,omitempty"`
	Company     string     `json:"company,omitempty"`
	Email       string     `json:"email,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CategoryIDs []string   `json:"categoryIds"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// StakeholderCategory labels stakeholders. Color must belong to CategoryColors.
type StakeholderCategory struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// Transcript holds the finished text produced for a meeting by the capture
// pipeline. The pipeline itself is an external producer; it only ever writes
// finished records through the transcript service.
type Transcript struct {
	ID        string     `json:"id"`
	MeetingID string     `json:"meetingId"`
	Content   string     `json:"content"`
	Language  string     `json:"language,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// MeetingAnalysis holds AI-produced analysis for a meeting.
type MeetingAnalysis struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meetingId"`
	Summary     string     `json:"summary,omitempty"`
	ActionItems string     `json:"actionItems,omitempty"`
	Sentiment   string     `json:"sentiment,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// AudioRecording is local-only bookkeeping for a captured audio file. Audio
// never leaves the device: recordings are excluded from sync and from every
// backup path, and are hard-deleted together with their meeting.
type AudioRecording struct {
	ID          string    `json:"id"`
	MeetingID   string    `json:"meetingId"`
	Path        string    `json:"path"`
	DurationSec int       `json:"durationSec"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task is a local-only to-do, optionally tied to a meeting. Tasks are not
// replicated and not exported.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	MeetingID string     `json:"meetingId,omitempty"`
	Done      bool       `json:"done"`
	DueDate   string     `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// CategoryColors is the fixed palette allowed for category colors.
var CategoryColors = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e",
	"#06b6d4", "#3b82f6", "#8b5cf6", "#ec4899",
}

// ValidCategoryColor reports whether c belongs to the palette.
func ValidCategoryColor(c string) bool {
	for _, known := range CategoryColors {
		if c == known {
			return true
		}
	}
	return false
}
