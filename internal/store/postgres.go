package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i474232898/weather-monitor/internal/weather"
)

const postgresSchemaSQL = `
	CREATE TABLE IF NOT EXISTS weather_summaries (
		id                 TEXT PRIMARY KEY,
		seq                BIGSERIAL,
		city               TEXT NOT NULL,
		date               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		avg_temp           DOUBLE PRECISION NOT NULL,
		max_temp           DOUBLE PRECISION NOT NULL,
		min_temp           DOUBLE PRECISION NOT NULL,
		dominant_condition TEXT NOT NULL
	)
`

const insertSummaryPostgresSQL = `
	INSERT INTO weather_summaries (id, city, date, avg_temp, max_temp, min_temp, dominant_condition)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

const listSummariesPostgresSQL = `
	SELECT id, city, date, avg_temp, max_temp, min_temp, dominant_condition
	FROM weather_summaries
	ORDER BY seq
`

// PostgresStore keeps summaries in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and makes sure the table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init postgres schema: %w", err)
	}
	return s, nil
}

// SaveSummary inserts one summary.
func (s *PostgresStore) SaveSummary(ctx context.Context, summary weather.DailySummary) error {
	_, err := s.pool.Exec(ctx, insertSummaryPostgresSQL,
		summary.ID,
		summary.City,
		summary.Date.UTC(),
		summary.AvgTemp,
		summary.MaxTemp,
		summary.MinTemp,
		summary.DominantCondition,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// ListSummaries returns all summaries in insertion order.
func (s *PostgresStore) ListSummaries(ctx context.Context) ([]weather.DailySummary, error) {
	rows, err := s.pool.Query(ctx, listSummariesPostgresSQL)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]weather.DailySummary, 0)
	for rows.Next() {
		var sum weather.DailySummary
		if err := rows.Scan(
			&sum.ID,
			&sum.City,
			&sum.Date,
			&sum.AvgTemp,
			&sum.MaxTemp,
			&sum.MinTemp,
			&sum.DominantCondition,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.Date = sum.Date.UTC()
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
