// Package recordings persists local-only bookkeeping rows for captured audio
// files. Recordings have no tombstone: they exist until their meeting is
// permanently deleted, and they never take part in sync or backup.
package recordings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

type Repository interface {
	Save(ctx context.Context, rec *models.AudioRecording) error
	GetByID(ctx context.Context, id string) (*models.AudioRecording, error)
	GetByMeetingID(ctx context.Context, meetingID string) ([]models.AudioRecording, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByMeetingID(ctx context.Context, meetingID string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *models.AudioRecording) error {
	query := `INSERT INTO audio_recordings (id, meeting_id, path, duration_sec, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET meeting_id = excluded.meeting_id,
				path = excluded.path,
				duration_sec = excluded.duration_sec
	`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.MeetingID, rec.Path, rec.DurationSec, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save recording: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.AudioRecording, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, meeting_id, path, duration_sec, created_at FROM audio_recordings WHERE id = ?`, id)
	var rec models.AudioRecording
	err := row.Scan(&rec.ID, &rec.MeetingID, &rec.Path, &rec.DurationSec, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select recording: %w", err)
	}
	return &rec, nil
}

func (r *SQLiteRepository) GetByMeetingID(ctx context.Context, meetingID string) ([]models.AudioRecording, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, meeting_id, path, duration_sec, created_at FROM audio_recordings WHERE meeting_id = ? ORDER BY created_at`,
		meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to select recordings: %w", err)
	}
	defer rows.Close()

	var result []models.AudioRecording
	for rows.Next() {
		var rec models.AudioRecording
		if err := rows.Scan(&rec.ID, &rec.MeetingID, &rec.Path, &rec.DurationSec, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM audio_recordings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM audio_recordings WHERE meeting_id = ?`, meetingID)
	if err != nil {
		return fmt.Errorf("failed to delete recordings for meeting: %w", err)
	}
	return nil
}
