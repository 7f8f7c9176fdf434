package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultFetchTimeout   = 30 * time.Second
	defaultPersistTimeout = 10 * time.Second
)

// Service polls the provider into the engine, turns windows into daily
// summaries, and answers read queries.
type Service struct {
	engine   *Engine
	provider Provider
	store    SummaryStore

	notifiers []Notifier
	recorder  Recorder
	log       *zap.SugaredLogger

	fetchTimeout   time.Duration
	persistTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithNotifiers adds alert notifiers.
func WithNotifiers(n ...Notifier) Option {
	return func(s *Service) {
		s.notifiers = append(s.notifiers, n...)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithFetchTimeout bounds each per-city provider call.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithPersistTimeout bounds each summary write.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// NewService creates a new Service.
func NewService(engine *Engine, provider Provider, store SummaryStore, opts ...Option) *Service {
	s := &Service{
		engine:         engine,
		provider:       provider,
		store:          store,
		recorder:       nopRecorder{},
		log:            zap.NewNop().Sugar(),
		fetchTimeout:   defaultFetchTimeout,
		persistTimeout: defaultPersistTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cities returns the tracked cities in configuration order.
func (s *Service) Cities() []string {
	return s.engine.Cities()
}

// Poll fetches one reading for every tracked city concurrently. A failing city
// is logged and skipped; it never stops the others.
func (s *Service) Poll(ctx context.Context) (succeeded, failed int) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, city := range s.engine.Cities() {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.PollCity(ctx, city)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return
			}
			succeeded++
		}()
	}
	wg.Wait()
	return succeeded, failed
}

// PollCity fetches and records a single reading for city. On error the city's
// state is left untouched.
func (s *Service) PollCity(ctx context.Context, city string) error {
	if s.provider == nil {
		return fmt.Errorf("no weather provider configured")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	r, err := s.provider.Fetch(fetchCtx, city)
	if err != nil {
		s.recorder.FetchFailed(city)
		s.log.Warnw("weather fetch failed", "city", city, "provider", s.provider.Name(), "error", err)
		return fmt.Errorf("fetch %s: %w", city, err)
	}

	tempC := ToCelsius(r.TemperatureK)
	alert, fired, err := s.engine.Record(city, tempC, r.Condition)
	if err != nil {
		s.recorder.FetchFailed(city)
		s.log.Errorw("failed to record reading", "city", city, "error", err)
		return err
	}
	s.recorder.FetchSucceeded(city)
	s.log.Infow("weather reading", "city", city, "temperatureC", tempC, "condition", r.Condition)

	if fired {
		s.recorder.AlertFired(city)
		s.dispatch(ctx, alert)
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, alert Alert) {
	s.log.Warnw("temperature threshold exceeded",
		"city", alert.City,
		"temperatureC", alert.Temperature,
		"thresholdC", alert.Threshold,
		"consecutiveBreaches", alert.Breaches,
	)
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, alert); err != nil {
			s.log.Errorw("alert notification failed", "city", alert.City, "error", err)
		}
	}
}

// Summarize drains every non-empty window into a DailySummary and hands it to
// the store. Windows are reset before the write is attempted, so a failed write
// loses that window; the failure is logged and counted.
func (s *Service) Summarize(ctx context.Context, at time.Time) []DailySummary {
	var out []DailySummary

	for _, city := range s.engine.Cities() {
		w, ok, err := s.engine.Drain(city)
		if err != nil {
			s.log.Errorw("failed to drain sample window", "city", city, "error", err)
			continue
		}
		if !ok {
			s.log.Debugw("no samples to summarize", "city", city)
			continue
		}

		summary := AggregateWindow(city, w, at)
		out = append(out, summary)

		s.log.Infow("daily weather summary",
			"city", city,
			"samples", w.Len(),
			"avgTempC", summary.AvgTemp,
			"maxTempC", summary.MaxTemp,
			"minTempC", summary.MinTemp,
			"dominantCondition", summary.DominantCondition,
		)

		s.persist(ctx, summary)
	}
	return out
}

func (s *Service) persist(ctx context.Context, summary DailySummary) {
	if s.store == nil {
		s.recorder.SummaryPersistFailed(summary.City)
		s.log.Errorw("summary dropped: no store configured", "city", summary.City)
		return
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	if err := s.store.SaveSummary(saveCtx, summary); err != nil {
		s.recorder.SummaryPersistFailed(summary.City)
		s.log.Errorw("failed to persist daily summary; window already reset",
			"city", summary.City, "summaryID", summary.ID, "error", err)
		return
	}
	s.recorder.SummaryPersisted(summary.City)
	s.log.Infow("saved daily summary", "city", summary.City, "summaryID", summary.ID)
}

// ListSummaries delegates to the store. The result is never nil on success.
func (s *Service) ListSummaries(ctx context.Context) ([]DailySummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no summary store configured")
	}
	summaries, err := s.store.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	if summaries == nil {
		summaries = []DailySummary{}
	}
	return summaries, nil
}

// CurrentSnapshot reads the live windows without changing them.
func (s *Service) CurrentSnapshot() []CityStatus {
	return s.engine.Snapshot()
}

// SeedSummaries writes the given summaries straight to the store, filling in
// a missing ID or date.
func (s *Service) SeedSummaries(ctx context.Context, summaries []DailySummary) error {
	if s.store == nil {
		return fmt.Errorf("no summary store configured")
	}
	now := time.Now().UTC()
	for _, sum := range summaries {
		if sum.ID == "" {
			sum.ID = newSummaryID()
		}
		if sum.Date.IsZero() {
			sum.Date = now
		}
		if err := s.store.SaveSummary(ctx, sum); err != nil {
			return fmt.Errorf("seed summary for %s: %w", sum.City, err)
		}
	}
	return nil
}
