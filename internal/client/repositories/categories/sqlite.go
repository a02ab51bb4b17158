package categories

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

const selectCols = `id, name, color, description, created_at, updated_at, deleted_at`

func (r *SQLiteRepository) Save(ctx context.Context, c *models.StakeholderCategory) error {
	query := `INSERT INTO stakeholder_categories (` + selectCols + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				color = excluded.color,
				description = excluded.description,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				deleted_at = excluded.deleted_at
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Color, c.Description, c.CreatedAt, c.UpdatedAt, c.DeletedAt)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) getWhere(ctx context.Context, where string, args ...any) (*models.StakeholderCategory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM stakeholder_categories WHERE `+where, args...)
	c, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.StakeholderCategory, error) {
	return r.getWhere(ctx, `id = ? AND deleted_at IS NULL`, id)
}

func (r *SQLiteRepository) GetAny(ctx context.Context, id string) (*models.StakeholderCategory, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.StakeholderCategory, error) {
	return r.listWhere(ctx, `deleted_at IS NULL`)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context) ([]models.StakeholderCategory, error) {
	return r.listWhere(ctx, `deleted_at IS NOT NULL`)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.StakeholderCategory, error) {
	return r.listWhere(ctx, `1=1`)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.StakeholderCategory, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	return r.listWhere(ctx,
		`deleted_at IS NULL AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`,
		pattern, pattern)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stakeholder_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listWhere(ctx context.Context, where string, args ...any) ([]models.StakeholderCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectCols+` FROM stakeholder_categories WHERE `+where+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.StakeholderCategory
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanCategory(scan func(dest ...any) error) (*models.StakeholderCategory, error) {
	var c models.StakeholderCategory
	var deletedAt sql.NullTime
	if err := scan(&c.ID, &c.Name, &c.Color, &c.Description, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return &c, nil
}
