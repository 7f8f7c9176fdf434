package weather

import (
	"encoding/json"
	"time"
)

// Unavailable is what the snapshot reports for a field that has no data yet.
const Unavailable = "N/A"

// Reading is one observation returned by a Provider for a city.
type Reading struct {
	City         string
	ProviderName string
	Timestamp    time.Time

	TemperatureK float64
	Condition    string
}

// DailySummary is the aggregate of one city's SampleWindow.
// Once built it is never mutated.
type DailySummary struct {
	ID                string    `json:"id"`
	City              string    `json:"city" validate:"required"`
	Date              time.Time `json:"date"`
	AvgTemp           float64   `json:"avgTemp"`
	MaxTemp           float64   `json:"maxTemp"`
	MinTemp           float64   `json:"minTemp"`
	DominantCondition string    `json:"dominantCondition" validate:"required"`
}

// Measurement is a temperature that may be missing.
type Measurement struct {
	Value float64
	Valid bool
}

// Known wraps a present value.
func Known(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// MarshalJSON encodes a missing value as the Unavailable marker.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(Unavailable)
	}
	return json.Marshal(m.Value)
}

// CityStatus is the live, unpersisted view of one city.
type CityStatus struct {
	City            string      `json:"city"`
	LatestTemp      Measurement `json:"latestTemp"`
	LatestCondition string      `json:"latestCondition"`
	MaxTemp         Measurement `json:"maxTemp"`
	MinTemp         Measurement `json:"minTemp"`
}

// Alert is emitted when a city breaches the threshold enough times in a row.
type Alert struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Threshold   float64   `json:"threshold"`
	Breaches    int       `json:"consecutiveBreaches"`
	Timestamp   time.Time `json:"timestamp"`
}
