package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/i474232898/weather-monitor/internal/alerts"
	httpapi "github.com/i474232898/weather-monitor/internal/api/http"
	"github.com/i474232898/weather-monitor/internal/config"
	"github.com/i474232898/weather-monitor/internal/logging"
	"github.com/i474232898/weather-monitor/internal/metrics"
	"github.com/i474232898/weather-monitor/internal/scheduler"
	"github.com/i474232898/weather-monitor/internal/store"
	"github.com/i474232898/weather-monitor/internal/weather"
	"github.com/i474232898/weather-monitor/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Errorw("weather-monitor exited", "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

// run owns every resource it opens; its defers release them on any return path.
func run(ctx context.Context, cfg *config.AppConfig, log *zap.SugaredLogger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider, err := providers.New(cfg.Provider, httpClient, cfg.WeatherAPIKey, cfg.FetchRetries)
	if err != nil {
		return fmt.Errorf("create weather provider: %w", err)
	}

	// The store must be reachable before anything is scheduled or served.
	openCtx, cancelOpen := context.WithTimeout(ctx, 15*time.Second)
	summaryStore, err := store.Open(openCtx, cfg.DatabaseURL)
	cancelOpen()
	if err != nil {
		return fmt.Errorf("open summary store: %w", err)
	}
	defer summaryStore.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(registry)

	opts := []weather.Option{
		weather.WithLogger(log),
		weather.WithRecorder(recorder),
		weather.WithFetchTimeout(cfg.FetchTimeout),
	}
	if len(cfg.KafkaBrokers) > 0 {
		kn, err := alerts.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return fmt.Errorf("create kafka alert notifier: %w", err)
		}
		defer kn.Close()
		opts = append(opts, weather.WithNotifiers(kn))
		log.Infow("publishing alerts to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	engine := weather.NewEngine(cfg.Cities, cfg.AlertThreshold, cfg.ConsecutiveBreaches)
	service := weather.NewService(engine, provider, summaryStore, opts...)

	sched := scheduler.New(service, cfg.PollInterval, cfg.SummaryCron, cfg.SummaryLocation, log.Named("scheduler"))
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-monitor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	httpapi.RegisterRoutes(app, service)

	listenErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", cfg.ListenAddr(), "cities", cfg.Cities)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			listenErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber server stopped: %w", err)
	default:
		return nil
	}
}
