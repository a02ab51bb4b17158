package analyses

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

const selectCols = `id, meeting_id, summary, action_items, sentiment, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, a *models.MeetingAnalysis) error {
	query := `INSERT INTO meeting_analyses (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET meeting_id = excluded.meeting_id,
				summary = excluded.summary,
				action_items = excluded.action_items,
				sentiment = excluded.sentiment,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.MeetingID, a.Summary, a.ActionItems, a.Sentiment, a.CreatedAt, a.UpdatedAt, a.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.MeetingAnalysis, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM meeting_analyses WHERE `+where, args...)
	a, err := scanAnalysis(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select analysis: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.MeetingAnalysis, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.MeetingAnalysis, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.MeetingAnalysis, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.MeetingAnalysis, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.MeetingAnalysis, error) {
	return r.listWhere(ctx, `1=1`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.MeetingAnalysis, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx,
		`deleted_at IS NULL AND (LOWER(summary) LIKE ? OR LOWER(action_items) LIKE ?)`,
		pattern, pattern)
}

func (r *SQLiteRepository) GetByMeetingID(ctx context.Context, meetingID string) ([]models.MeetingAnalysis, error) {
	return r.listWhere(ctx, `meeting_id = ? AND deleted_at IS NULL`, meetingID)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM meeting_analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM meeting_analyses WHERE meeting_id = ?`, meetingID)
	if err != nil {
		return fmt.Errorf("failed to delete analyses for meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.MeetingAnalysis, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM meeting_analyses WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select analyses: %w", err)
	}
	defer rows.Close()

	var result []models.MeetingAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanAnalysis(scan func(dest ...any) error) (*models.MeetingAnalysis, error) {
	var a models.MeetingAnalysis
	var deletedAt sql.NullTime
	if err := scan(&a.ID, &a.MeetingID, &a.Summary, &a.ActionItems, &a.Sentiment, &a.CreatedAt, &a.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		a.DeletedAt = &t
	}
	return &a, nil
}
