package transcripts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectCols = `id, meeting_id, content, language, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, t *models.Transcript) error {
	query := `INSERT INTO transcripts (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET meeting_id = excluded.meeting_id,
				content = excluded.content,
				language = excluded.language,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.MeetingID, t.Content, t.Language, t.CreatedAt, t.UpdatedAt, t.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.Transcript, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM transcripts WHERE `+where, args...)
	t, err := scanTranscript(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select transcript: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Transcript, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.Transcript, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Transcript, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.Transcript, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Transcript, error) {
	return r.listWhere(ctx, `1=1`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Transcript, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx, `deleted_at IS NULL AND LOWER(content) LIKE ?`, pattern)
}

func (r *SQLiteRepository) GetByMeetingID(ctx context.Context, meetingID string) ([]models.Transcript, error) {
	return r.listWhere(ctx, `meeting_id = ? AND deleted_at IS NULL`, meetingID)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transcripts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transcripts WHERE meeting_id = ?`, meetingID)
	if err != nil {
		return fmt.Errorf("failed to delete transcripts for meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.Transcript, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM transcripts WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select transcripts: %w", err)
	}
	defer rows.Close()

	var result []models.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTranscript(scan func(dest ...any) error) (*models.Transcript, error) {
	var t models.Transcript
	var deletedAt sql.NullTime
	if err := scan(&t.ID, &t.MeetingID, &t.Content, &t.Language, &t.CreatedAt, &t.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		ts := deletedAt.Time
		t.DeletedAt = &ts
	}
	return &t, nil
}
