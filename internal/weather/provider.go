package weather

import (
	"context"
)

// Provider abstracts the external weather source (e.g. OpenWeatherMap, WeatherAPI).
// Temperatures are reported in Kelvin.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Reading, error)
}

// SummaryStore is the persistence collaborator for daily summaries.
type SummaryStore interface {
	SaveSummary(ctx context.Context, summary DailySummary) error
	ListSummaries(ctx context.Context) ([]DailySummary, error)
}

// Notifier receives consecutive-breach alerts.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Recorder observes the service's outcomes. Implemented by the metrics package.
type Recorder interface {
	FetchSucceeded(city string)
	FetchFailed(city string)
	AlertFired(city string)
	SummaryPersisted(city string)
	SummaryPersistFailed(city string)
}

type nopRecorder struct{}

func (nopRecorder) FetchSucceeded(string)       {}
func (nopRecorder) FetchFailed(string)          {}
func (nopRecorder) AlertFired(string)           {}
func (nopRecorder) SummaryPersisted(string)     {}
func (nopRecorder) SummaryPersistFailed(string) {}
