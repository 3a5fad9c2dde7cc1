package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/sentinel/internal/config"
	"github.com/your-org/sentinel/internal/models"
)

// ErrNotFound is returned when a mutation targets a row that does not exist.
var ErrNotFound = errors.New("record not found")

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(cfg config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the tables, indexes, and the permissive development
// RLS policies if they don't exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- Soldiers ---

// ListSoldiers returns every roster record ordered by creation time
// descending. No pagination.
func (s *PostgresStore) ListSoldiers(ctx context.Context) ([]models.Soldier, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, position, sex, age, status, photo_data, created_at, updated_at
		 FROM soldiers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list soldiers: %w", err)
	}
	defer rows.Close()

	var soldiers []models.Soldier
	for rows.Next() {
		var sol models.Soldier
		if err := rows.Scan(&sol.ID, &sol.Name, &sol.Position, &sol.Sex, &sol.Age,
			&sol.Status, &sol.PhotoData, &sol.CreatedAt, &sol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan soldier: %w", err)
		}
		soldiers = append(soldiers, sol)
	}
	return soldiers, nil
}

// CreateSoldier inserts a record and fills in the generated id and
// timestamps.
func (s *PostgresStore) CreateSoldier(ctx context.Context, sol *models.Soldier) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO soldiers (name, position, sex, age, status, photo_data)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		sol.Name, sol.Position, sol.Sex, sol.Age, sol.Status, sol.PhotoData,
	).Scan(&sol.ID, &sol.CreatedAt, &sol.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create soldier: %w", err)
	}
	return nil
}

// UpdateSoldier rewrites the mutable columns of an existing record. The id
// and created_at never change; updated_at is refreshed by the statement.
func (s *PostgresStore) UpdateSoldier(ctx context.Context, sol *models.Soldier) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE soldiers
		 SET name = $1, position = $2, sex = $3, age = $4, status = $5, photo_data = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		sol.Name, sol.Position, sol.Sex, sol.Age, sol.Status, sol.PhotoData, sol.ID,
	).Scan(&sol.CreatedAt, &sol.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update soldier: %w", err)
	}
	return nil
}

// DeleteSoldier removes a record. Deleting an unknown id surfaces
// ErrNotFound; it is never retried.
func (s *PostgresStore) DeleteSoldier(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM soldiers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete soldier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- System logs ---

func (s *PostgresStore) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	if entry.CreatedBy == "" {
		entry.CreatedBy = "system"
	}
	var ctxJSON any
	if len(entry.Context) > 0 {
		ctxJSON = json.RawMessage(entry.Context)
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO system_logs (level, tag, message, context, created_by)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		entry.Level, nullable(entry.Tag), entry.Message, ctxJSON, entry.CreatedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

// ListLogs returns the most recent limit entries, creation time descending.
func (s *PostgresStore) ListLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, level, COALESCE(tag, ''), message, context, created_by
		 FROM system_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Level, &e.Tag, &e.Message, &e.Context, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ClearLogs deletes every entry. Not reversible.
func (s *PostgresStore) ClearLogs(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM system_logs`); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
