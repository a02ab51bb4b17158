package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/client/repositories/repomanager"
	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// ImportResult reports the outcome of a snapshot merge. Imported counts rows
// that were inserted or overwritten, Skipped counts rows the local store
// already had at the same or a newer updatedAt.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// BackupService produces and consumes versioned snapshots. The same Import
// merge serves manual file restores, relay pulls, and S3 restores.
type BackupService interface {
	// Export bundles every replicated row, tombstones included. Audio and
	// local bookkeeping tables are never part of a snapshot.
	Export(ctx context.Context) (*wire.Snapshot, error)

	// ValidateSnapshot structurally checks a raw snapshot document and
	// returns the first violated constraint, or nil. It never touches the
	// store, so a malformed file is rejected before anything is applied.
	ValidateSnapshot(raw []byte) error

	// Import merges the snapshot into the local store in one transaction.
	// Unknown ids are inserted; known ids are overwritten only when the
	// incoming updatedAt is strictly newer. Imported rows are written as-is,
	// timestamps included, and no outbox entries are produced.
	Import(ctx context.Context, snap *wire.Snapshot) (*ImportResult, error)
}

type backupService struct {
	db    *sql.DB
	repos repomanager.Manager
}

func NewBackupService(db *sql.DB, repos repomanager.Manager) BackupService {
	return &backupService{db: db, repos: repos}
}

func (s *backupService) Export(ctx context.Context) (*wire.Snapshot, error) {
	snap := &wire.Snapshot{
		Version:    wire.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if snap.Meetings, err = s.repos.Meetings(s.db).ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.Stakeholders, err = s.repos.Stakeholders(s.db).ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.StakeholderCategories, err = s.repos.Categories(s.db).ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.Transcripts, err = s.repos.Transcripts(s.db).ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.MeetingAnalyses, err = s.repos.Analyses(s.db).ListAll(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// entityFields lists the per-kind arrays a snapshot must carry. A missing
// field and a non-array field are both rejected; empty arrays are fine.
var entityFields = []string{"meetings", "stakeholders", "stakeholderCategories", "transcripts", "meetingAnalyses"}

func (s *backupService) ValidateSnapshot(raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: not a JSON object", shared.ErrInvalidSnapshot)
	}

	var version string
	if err := json.Unmarshal(doc["version"], &version); err != nil || version != wire.SnapshotVersion {
		return fmt.Errorf("%w: missing or unsupported version", shared.ErrInvalidSnapshot)
	}

	for _, field := range entityFields {
		body, ok := doc[field]
		if !ok {
			return fmt.Errorf("%w: missing field %q", shared.ErrInvalidSnapshot, field)
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(body, &arr); err != nil {
			return fmt.Errorf("%w: field %q is not an array", shared.ErrInvalidSnapshot, field)
		}
	}

	var meetings []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(doc["meetings"], &meetings); err != nil {
		return fmt.Errorf("%w: malformed meeting entry", shared.ErrInvalidSnapshot)
	}
	for i, m := range meetings {
		if m.ID == "" {
			return fmt.Errorf("%w: meeting %d has no id", shared.ErrInvalidSnapshot, i)
		}
		if m.Title == "" {
			return fmt.Errorf("%w: meeting %d has no title", shared.ErrInvalidSnapshot, i)
		}
	}
	return nil
}

func (s *backupService) Import(ctx context.Context, snap *wire.Snapshot) (*ImportResult, error) {
	result := &ImportResult{}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meetings := s.repos.Meetings(tx)
		for i := range snap.Meetings {
			rec := &snap.Meetings[i]
			existing, err := meetings.GetAny(ctx, rec.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil && !rec.UpdatedAt.After(existing.UpdatedAt) {
				result.Skipped++
				continue
			}
			if err := meetings.Save(ctx, rec); err != nil {
				return err
			}
			result.Imported++
		}

		stakeholders := s.repos.Stakeholders(tx)
		for i := range snap.Stakeholders {
			rec := &snap.Stakeholders[i]
			existing, err := stakeholders.GetAny(ctx, rec.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil && !rec.UpdatedAt.After(existing.UpdatedAt) {
				result.Skipped++
				continue
			}
			if err := stakeholders.Save(ctx, rec); err != nil {
				return err
			}
			result.Imported++
		}

		categories := s.repos.Categories(tx)
		for i := range snap.StakeholderCategories {
			rec := &snap.StakeholderCategories[i]
			existing, err := categories.GetAny(ctx, rec.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil && !rec.UpdatedAt.After(existing.UpdatedAt) {
				result.Skipped++
				continue
			}
			if err := categories.Save(ctx, rec); err != nil {
				return err
			}
			result.Imported++
		}

		transcripts := s.repos.Transcripts(tx)
		for i := range snap.Transcripts {
			rec := &snap.Transcripts[i]
			existing, err := transcripts.GetAny(ctx, rec.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil && !rec.UpdatedAt.After(existing.UpdatedAt) {
				result.Skipped++
				continue
			}
			if err := transcripts.Save(ctx, rec); err != nil {
				return err
			}
			result.Imported++
		}

		analyses := s.repos.Analyses(tx)
		for i := range snap.MeetingAnalyses {
			rec := &snap.MeetingAnalyses[i]
			existing, err := analyses.GetAny(ctx, rec.ID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if existing != nil && !rec.UpdatedAt.After(existing.UpdatedAt) {
				result.Skipped++
				continue
			}
			if err := analyses.Save(ctx, rec); err != nil {
				return err
			}
			result.Imported++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
