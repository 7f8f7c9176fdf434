package store

import (
	"context"
	"sync"

	"github.com/i474232898/weather-monitor/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory summary store. It does not
// survive a restart and is meant for tests and local runs.
type MemoryStore struct {
	mu sync.RWMutex

	summaries []weather.DailySummary

	// retention: max number of summaries kept (0 = unlimited)
	maxHistory int
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{maxHistory: maxHistory}
}

// SaveSummary appends a summary and enforces retention by dropping the oldest.
func (s *MemoryStore) SaveSummary(ctx context.Context, summary weather.DailySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries = append(s.summaries, summary)

	if s.maxHistory > 0 && len(s.summaries) > s.maxHistory {
		over := len(s.summaries) - s.maxHistory
		s.summaries = append([]weather.DailySummary(nil), s.summaries[over:]...)
	}
	return nil
}

// ListSummaries returns every stored summary in insertion order.
func (s *MemoryStore) ListSummaries(ctx context.Context) ([]weather.DailySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.DailySummary, len(s.summaries))
	copy(out, s.summaries)
	return out, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
