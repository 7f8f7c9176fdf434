package providers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/i474232898/weather-monitor/internal/weather"
)

// New returns the provider registered under name ("openweather" or "weatherapi").
// retries is the number of extra attempts made on 429 and 5xx responses.
func New(name string, client *http.Client, apiKey string, retries int) (weather.Provider, error) {
	if retries < 0 {
		return nil, fmt.Errorf("%w: retries must not be negative", errInvalidConfig)
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "openweather", "openweathermap":
		p := NewOpenWeatherProvider(client, apiKey)
		p.httpCfg.Backoff.MaxRetries = retries
		return p, nil
	case "weatherapi":
		p := NewWeatherAPIProvider(client, apiKey)
		p.httpCfg.Backoff.MaxRetries = retries
		return p, nil
	default:
		return nil, fmt.Errorf("unknown weather provider %q", name)
	}
}
