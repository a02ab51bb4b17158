// Package tasks persists local-only to-dos. Tasks follow the same
// soft-delete discipline as the replicated entities but never enter the sync
// queue or a snapshot.
package tasks

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

type Repository interface {
	Save(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetAny(ctx context.Context, id string) (*models.Task, error)
	GetAll(ctx context.Context) ([]models.Task, error)
	GetDeleted(ctx context.Context) ([]models.Task, error)
	Search(ctx context.Context, q string) ([]models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectCols = `id, title, meeting_id, done, due_date, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, t *models.Task) error {
	query := `INSERT INTO tasks (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				meeting_id = excluded.meeting_id,
				done = excluded.done,
				due_date = excluded.due_date,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.MeetingID, t.Done, t.DueDate, t.CreatedAt, t.UpdatedAt, t.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM tasks WHERE `+where, args...)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.Task, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.Task, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Task, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx, `deleted_at IS NULL AND LOWER(title) LIKE ?`, pattern)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM tasks WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
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

func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	var t models.Task
	var deletedAt sql.NullTime
	if err := scan(&t.ID, &t.Title, &t.MeetingID, &t.Done, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		ts := deletedAt.Time
		t.DeletedAt = &ts
	}
	return &t, nil
}
