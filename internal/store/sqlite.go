package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/i474232898/weather-monitor/internal/weather"
)

const sqliteSchemaSQL = `
	CREATE TABLE IF NOT EXISTS weather_summaries (
		seq                INTEGER PRIMARY KEY AUTOINCREMENT,
		id                 TEXT NOT NULL UNIQUE,
		city               TEXT NOT NULL,
		date               TEXT NOT NULL,
		avg_temp           REAL NOT NULL,
		max_temp           REAL NOT NULL,
		min_temp           REAL NOT NULL,
		dominant_condition TEXT NOT NULL
	)
`

const insertSummarySQLiteSQL = `
	INSERT INTO weather_summaries (id, city, date, avg_temp, max_temp, min_temp, dominant_condition)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

const listSummariesSQLiteSQL = `
	SELECT id, city, date, avg_temp, max_temp, min_temp, dominant_condition
	FROM weather_summaries
	ORDER BY seq
`

// SQLiteStore keeps summaries in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single writer avoids SQLITE_BUSY between the scheduler and handlers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return s, nil
}

// SaveSummary inserts one summary.
func (s *SQLiteStore) SaveSummary(ctx context.Context, summary weather.DailySummary) error {
	_, err := s.db.ExecContext(ctx, insertSummarySQLiteSQL,
		summary.ID,
		summary.City,
		summary.Date.UTC().Format(time.RFC3339Nano),
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
func (s *SQLiteStore) ListSummaries(ctx context.Context) ([]weather.DailySummary, error) {
	rows, err := s.db.QueryContext(ctx, listSummariesSQLiteSQL)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]weather.DailySummary, 0)
	for rows.Next() {
		var (
			sum  weather.DailySummary
			date string
		)
		if err := rows.Scan(
			&sum.ID,
			&sum.City,
			&date,
			&sum.AvgTemp,
			&sum.MaxTemp,
			&sum.MinTemp,
			&sum.DominantCondition,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if sum.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("parse summary date %q: %w", date, err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Ping checks that the file is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
