package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/clvpredictor/internal/domain/model"
	"github.com/polkiloo/clvpredictor/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps draft metric inputs in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type inputRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks database connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Inputs returns the draft input repository.
func (s *Storage) Inputs() repository.InputRepository {
	return &inputRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS metric_drafts (
            session_id TEXT NOT NULL,
            field TEXT NOT NULL,
            raw_value TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (session_id, field)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_metric_drafts_updated ON metric_drafts(updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func (r *inputRepository) SetField(ctx context.Context, sessionID string, field model.MetricField, raw string) error {
	const query = `INSERT INTO metric_drafts (session_id, field, raw_value) VALUES ($1, $2, $3)
        ON CONFLICT (session_id, field) DO UPDATE SET raw_value = EXCLUDED.raw_value, updated_at = NOW()`
	if _, err := r.storage.pool.Exec(ctx, query, sessionID, string(field), raw); err != nil {
		return fmt.Errorf("store draft field: %w", err)
	}
	return nil
}

func (r *inputRepository) CurrentValues(ctx context.Context, sessionID string) (model.CustomerMetricsInput, error) {
	const query = `SELECT field, raw_value FROM metric_drafts WHERE session_id=$1`
	values := model.DefaultMetricsInput()

	rows, err := r.storage.pool.Query(ctx, query, sessionID)
	if err != nil {
		return values, fmt.Errorf("load draft: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return values, fmt.Errorf("scan draft field: %w", err)
		}
		field, ok := model.ParseMetricField(name)
		if !ok {
			r.storage.logger.Warn("skipping unknown draft field", slog.String("field", name))
			continue
		}
		values = values.With(field, raw)
	}
	if err := rows.Err(); err != nil {
		return values, fmt.Errorf("load draft: %w", err)
	}
	return values, nil
}

func (r *inputRepository) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM metric_drafts WHERE session_id=$1`
	if _, err := r.storage.pool.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
