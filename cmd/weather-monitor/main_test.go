package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-monitor/internal/config"
)

func testConfig(dbURL string) *config.AppConfig {
	return &config.AppConfig{
		WeatherAPIKey:       "k",
		Provider:            "openweather",
		PollInterval:        time.Minute,
		SummaryCron:         "0 0 * * *",
		AlertThreshold:      35,
		ConsecutiveBreaches: 2,
		Cities:              []string{"Delhi"},
		DatabaseURL:         dbURL,
		Port:                "0",
		HTTPTimeout:         time.Second,
		FetchTimeout:        time.Second,
	}
}

func TestRunRejectsProviderBeforeOpeningStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.db")
	cfg := testConfig("sqlite://" + path)
	cfg.Provider = "darksky"

	err := run(context.Background(), cfg, zap.NewNop().Sugar())
	if err == nil || !strings.Contains(err.Error(), "weather provider") {
		t.Fatalf("err = %v, want provider error", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("store was opened before the provider check: %v", statErr)
	}
}

func TestRunReturnsSchedulerError(t *testing.T) {
	cfg := testConfig("memory://")
	cfg.SummaryCron = "every day at noon"

	err := run(context.Background(), cfg, zap.NewNop().Sugar())
	if err == nil || !strings.Contains(err.Error(), "start scheduler") {
		t.Fatalf("err = %v, want scheduler error", err)
	}
}
