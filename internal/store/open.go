package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-monitor/internal/weather"
)

// ErrUnsupportedStore is returned for a DATABASE_URL scheme with no backend.
var ErrUnsupportedStore = errors.New("unsupported store url")

// Store is a summary store that owns a connection.
type Store interface {
	weather.SummaryStore
	Ping(ctx context.Context) error
	Close() error
}

// Open picks a backend from the URL scheme:
//
//	postgres://... or postgresql://...  PostgreSQL
//	sqlite://<path>                     SQLite file
//	memory://[?max_history=N]           in-process, lost on restart
//
// The returned store has already been pinged.
func Open(ctx context.Context, rawURL string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch {
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		s, err = NewPostgresStore(ctx, rawURL)
	case strings.HasPrefix(rawURL, "sqlite://"):
		path := strings.TrimPrefix(rawURL, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("%w: sqlite url needs a path", ErrUnsupportedStore)
		}
		s, err = NewSQLiteStore(ctx, path)
	case strings.HasPrefix(rawURL, "memory://"):
		s, err = openMemory(rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStore, rawURL)
	}
	// A failed constructor returns a typed nil pointer; keep the interface nil.
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openMemory(rawURL string) (*MemoryStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStore, err)
	}
	limit := 0
	if v := u.Query().Get("max_history"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return nil, fmt.Errorf("%w: max_history must be a non-negative integer, got %q", ErrUnsupportedStore, v)
		}
	}
	return NewMemoryStore(limit), nil
}
