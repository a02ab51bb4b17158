package meetings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
)

// SQLiteRepository implements Repository over a dbx.DBTX, so it can run
// against the shared *sql.DB or inside a service-owned transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectCols = `id, title, date, location, notes, stakeholder_ids, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, m *models.Meeting) error {
	ids, err := json.Marshal(m.StakeholderIDs)
	if err != nil {
		return fmt.Errorf("failed to encode stakeholder ids: %w", err)
	}
	query := `INSERT INTO meetings (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				date = excluded.date,
				location = excluded.location,
				notes = excluded.notes,
				stakeholder_ids = excluded.stakeholder_ids,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.Title, m.Date, m.Location, m.Notes, string(ids), m.CreatedAt, m.UpdatedAt, m.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.Meeting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM meetings WHERE `+where, args...)
	m, err := scanMeeting(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select meeting: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.Meeting, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Meeting, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.Meeting, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Meeting, error) {
	return r.listWhere(ctx, `1=1`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Meeting, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx,
		`deleted_at IS NULL AND (LOWER(title) LIKE ? OR LOWER(notes) LIKE ? OR LOWER(location) LIKE ?)`,
		pattern, pattern, pattern)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.Meeting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM meetings WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select meetings: %w", err)
	}
	defer rows.Close()

	var result []models.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMeeting(scan func(dest ...any) error) (*models.Meeting, error) {
	var m models.Meeting
	var ids string
	var deletedAt sql.NullTime
	if err := scan(&m.ID, &m.Title, &m.Date, &m.Location, &m.Notes, &ids, &m.CreatedAt, &m.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ids), &m.StakeholderIDs); err != nil {
		return nil, fmt.Errorf("failed to decode stakeholder ids: %w", err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		m.DeletedAt = &t
	}
	return &m, nil
}
