package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/weather-monitor/internal/common"
	"github.com/i474232898/weather-monitor/internal/weather"
	"github.com/sony/gobreaker"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
// WeatherAPI reports Celsius; readings are converted back to Kelvin so that every
// provider feeds the same conversion path.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Fetch(ctx context.Context, city string) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("weatherapi: %w", errNoAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("weatherapi: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Current *struct {
			LastUpdatedEpoch int64   `json:"last_updated_epoch"`
			TempC            float64 `json:"temp_c"`
			Condition        struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("weatherapi: %w: %v", errMalformed, err)
	}
	if payload.Current == nil {
		return weather.Reading{}, fmt.Errorf("weatherapi: %w: missing current", errMalformed)
	}

	ts := time.Now().UTC()
	if payload.Current.LastUpdatedEpoch > 0 {
		ts = time.Unix(payload.Current.LastUpdatedEpoch, 0).UTC()
	}

	return weather.Reading{
		City:         city,
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureK: weather.ToKelvin(payload.Current.TempC),
		Condition:    mapWeatherAPICondition(payload.Current.Condition.Text),
	}, nil
}

// mapWeatherAPICondition folds WeatherAPI's free-text condition onto the
// OpenWeatherMap "main" group names so summaries stay comparable.
func mapWeatherAPICondition(text string) string {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return "Unknown"
	case common.HasAny(t, "thunder", "storm"):
		return "Thunderstorm"
	case common.HasAny(t, "drizzle"):
		return "Drizzle"
	case common.HasAny(t, "rain", "shower"):
		return "Rain"
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice pellets"):
		return "Snow"
	case common.HasAny(t, "mist"):
		return "Mist"
	case common.HasAny(t, "fog"):
		return "Fog"
	case common.HasAny(t, "haze"):
		return "Haze"
	case common.HasAny(t, "cloud", "overcast"):
		return "Clouds"
	case common.HasAny(t, "sunny", "clear"):
		return "Clear"
	default:
		return text
	}
}
