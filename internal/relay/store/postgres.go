package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/relay/migrations"
)

// PostgresStore keeps relay rows in a single sync_records table with primary
// key (entity, entity_id).
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the database and runs the embedded migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

func (s *PostgresStore) Conn() *sql.DB {
	return s.db
}

func (s *PostgresStore) Upsert(ctx context.Context, rec Record) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_records (entity, entity_id, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity, entity_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
		WHERE sync_records.updated_at < excluded.updated_at
	`, rec.Entity, rec.EntityID, rec.Payload, rec.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to upsert sync record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *PostgresStore) List(ctx context.Context, since *time.Time) ([]Record, error) {
	query := `SELECT entity, entity_id, payload, updated_at FROM sync_records`
	var args []any
	if since != nil {
		query += ` WHERE updated_at > $1`
		args = append(args, *since)
	}
	query += ` ORDER BY entity, entity_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select sync records: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Entity, &rec.EntityID, &rec.Payload, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) Status(ctx context.Context) (map[models.EntityKind]int, *time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entity, COUNT(*), MAX(updated_at) FROM sync_records GROUP BY entity`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to select sync record status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.EntityKind]int)
	var last *time.Time
	for rows.Next() {
		var kind models.EntityKind
		var count int
		var max time.Time
		if err := rows.Scan(&kind, &count, &max); err != nil {
			return nil, nil, err
		}
		counts[kind] = count
		if last == nil || max.After(*last) {
			m := max
			last = &m
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return counts, last, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
