package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-monitor/internal/common"
)

var defaultCities = []string{"Delhi", "Mumbai", "Chennai", "Bangalore", "Kolkata", "Hyderabad"}

type AppConfig struct {
	// Credential for the external weather provider.
	WeatherAPIKey string `validate:"required"`
	Provider      string `validate:"oneof=openweather openweathermap weatherapi"`

	// PollInterval controls how often every city is fetched.
	PollInterval time.Duration `validate:"gte=1000000000"`

	// SummaryCron is a five-field cron expression for the daily summary.
	SummaryCron     string `validate:"required"`
	SummaryLocation *time.Location

	AlertThreshold      float64
	ConsecutiveBreaches int `validate:"gte=1"`

	// Cities to track, in display order.
	Cities []string `validate:"min=1,dive,required"`

	DatabaseURL string `validate:"required"`

	Port         string `validate:"required,numeric"`
	HTTPTimeout  time.Duration
	FetchTimeout time.Duration
	FetchRetries int `validate:"gte=0"`

	KafkaBrokers []string
	KafkaTopic   string

	Debug bool
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		cfg.WeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(getenvDefault("WEATHER_PROVIDER", "openweather")))

	var err error
	if cfg.PollInterval, err = getenvDuration("POLL_INTERVAL", 2*time.Minute); err != nil {
		return nil, err
	}

	cfg.SummaryCron = getenvDefault("SUMMARY_CRON", "0 0 * * *")
	tz := getenvDefault("SUMMARY_TIMEZONE", "Local")
	if cfg.SummaryLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_TIMEZONE: %w", err)
	}

	if cfg.AlertThreshold, err = getenvFloat("ALERT_THRESHOLD_C", 35); err != nil {
		return nil, err
	}
	if cfg.ConsecutiveBreaches, err = getenvInt("ALERT_CONSECUTIVE_BREACHES", 2); err != nil {
		return nil, err
	}

	cfg.Cities = defaultCities
	if v := os.Getenv("TRACKED_CITIES"); v != "" {
		cfg.Cities = common.SplitList(v)
	}

	cfg.DatabaseURL = getenvDefault("DATABASE_URL", "sqlite://weather.db")
	cfg.Port = getenvDefault("PORT", "3000")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.FetchRetries, err = getenvInt("FETCH_RETRIES", 0); err != nil {
		return nil, err
	}

	cfg.KafkaBrokers = common.SplitList(os.Getenv("ALERT_KAFKA_BROKERS"))
	cfg.KafkaTopic = getenvDefault("ALERT_KAFKA_TOPIC", "weather-alerts")

	if cfg.Debug, err = getenvBool("LOG_DEBUG", false); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the :port string for the HTTP server.
func (c *AppConfig) ListenAddr() string {
	return ":" + c.Port
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s: %q is not a finite number", key, v)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
