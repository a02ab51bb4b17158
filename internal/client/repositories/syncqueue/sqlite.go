package syncqueue

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/dbx"
	"github.com/vkuznecovs/minutekeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, item *models.SyncItem) error {
	query := `INSERT INTO sync_queue (id, entity, entity_id, operation, payload, created_at, synced_at, error)
			VALUES (?, ?, ?, ?, ?, ?, NULL, NULL)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, string(item.Entity), item.EntityID, string(item.Operation), string(item.Payload), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue sync item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetPending(ctx context.Context) ([]models.SyncItem, error) {
	query := `SELECT id, entity, entity_id, operation, payload, created_at, synced_at, error
			FROM sync_queue WHERE synced_at IS NULL ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending sync items: %w", err)
	}
	defer rows.Close()

	var result []models.SyncItem
	for rows.Next() {
		var item models.SyncItem
		var entity, operation, payload string
		var syncedAt sql.NullTime
		var errMsg sql.NullString
		if err := rows.Scan(&item.ID, &entity, &item.EntityID, &operation, &payload, &item.CreatedAt, &syncedAt, &errMsg); err != nil {
			return nil, err
		}
		item.Entity = models.EntityKind(entity)
		item.Operation = models.Operation(operation)
		item.Payload = []byte(payload)
		if syncedAt.Valid {
			t := syncedAt.Time
			item.SyncedAt = &t
		}
		if errMsg.Valid {
			e := errMsg.String
			item.Error = &e
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string, when time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE sync_queue SET synced_at = ?, error = NULL WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]any, 0, len(ids)+1)
	args = append(args, when)
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark sync items synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, ids []string, msg string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE sync_queue SET error = ? WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]any, 0, len(ids)+1)
	args = append(args, msg)
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark sync items failed: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue WHERE synced_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending sync items: %w", err)
	}
	return n, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
