package store

import (
	"context"
	"testing"
	"time"

	"github.com/i474232898/weather-monitor/internal/weather"
)

func summary(city string, avg float64) weather.DailySummary {
	return weather.DailySummary{
		ID:                city + "-id",
		City:              city,
		Date:              time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC),
		AvgTemp:           avg,
		MaxTemp:           avg + 2,
		MinTemp:           avg - 2,
		DominantCondition: "Clear",
	}
}

func sameSummary(a, b weather.DailySummary) bool {
	return a.ID == b.ID &&
		a.City == b.City &&
		a.Date.Equal(b.Date) &&
		a.AvgTemp == b.AvgTemp &&
		a.MaxTemp == b.MaxTemp &&
		a.MinTemp == b.MinTemp &&
		a.DominantCondition == b.DominantCondition
}

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	got, err := s.ListSummaries(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty store: %v %v", got, err)
	}

	for _, c := range []string{"Delhi", "Mumbai", "Chennai"} {
		if err := s.SaveSummary(ctx, summary(c, 30)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, _ = s.ListSummaries(ctx)
	if len(got) != 3 || got[0].City != "Delhi" || got[2].City != "Chennai" {
		t.Fatalf("order %+v", got)
	}
}

func TestMemoryStoreRetention(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()
	for _, c := range []string{"Delhi", "Mumbai", "Chennai"} {
		s.SaveSummary(ctx, summary(c, 30))
	}
	got, _ := s.ListSummaries(ctx)
	if len(got) != 2 || got[0].City != "Mumbai" {
		t.Fatalf("retention kept %+v", got)
	}
}

func TestMemoryStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryStore(0).SaveSummary(ctx, summary("Delhi", 30)); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
}
