package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists synthesis history in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS synthesis_history (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			voice TEXT NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_synthesis_history_created ON synthesis_history (created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record Record) error {
	record = prepare(record)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO synthesis_history (id, filename, text, voice, rate, volume, file_size, success, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID,
		record.Filename,
		record.Text,
		record.Voice,
		record.Rate,
		record.Volume,
		record.FileSize,
		record.Success,
		record.Error,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save history record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, text, voice, rate, volume, file_size, success, error, created_at
		 FROM synthesis_history ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	items := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Filename, &r.Text, &r.Voice, &r.Rate, &r.Volume, &r.FileSize, &r.Success, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) Mode() string { return "postgres" }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
