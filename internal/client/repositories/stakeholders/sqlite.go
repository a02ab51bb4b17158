package stakeholders

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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectCols = `id, name, role, company, email, notes, category_ids, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Stakeholder) error {
	ids, err := json.Marshal(s.CategoryIDs)
	if err != nil {
		return fmt.Errorf("failed to encode category ids: %w", err)
	}
	query := `INSERT INTO stakeholders (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				role = excluded.role,
				company = excluded.company,
				email = excluded.email,
				notes = excluded.notes,
				category_ids = excluded.category_ids,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Role, s.Company, s.Email, s.Notes, string(ids), s.CreatedAt, s.UpdatedAt, s.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save stakeholder: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.Stakeholder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM stakeholders WHERE `+where, args...)
	s, err := scanStakeholder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select stakeholder: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Stakeholder, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.Stakeholder, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Stakeholder, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.Stakeholder, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Stakeholder, error) {
	return r.listWhere(ctx, `1=1`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Stakeholder, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx,
		`deleted_at IS NULL AND (LOWER(name) LIKE ? OR LOWER(role) LIKE ? OR LOWER(company) LIKE ?)`,
		pattern, pattern, pattern)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stakeholders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stakeholder: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.Stakeholder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM stakeholders WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select stakeholders: %w", err)
	}
	defer rows.Close()

	var result []models.Stakeholder
	for rows.Next() {
		s, err := scanStakeholder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanStakeholder(scan func(dest ...any) error) (*models.Stakeholder, error) {
	var s models.Stakeholder
	var ids string
	var deletedAt sql.NullTime
	if err := scan(&s.ID, &s.Name, &s.Role, &s.Company, &s.Email, &s.Notes, &ids, &s.CreatedAt, &s.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ids), &s.CategoryIDs); err != nil {
		return nil, fmt.Errorf("failed to decode category ids: %w", err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		s.DeletedAt = &t
	}
	return &s, nil
}
