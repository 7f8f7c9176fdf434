package weather

import "math"

// SampleWindow accumulates one city's readings since its last reset.
// Temperatures and Conditions always have the same length.
type SampleWindow struct {
	Temperatures []float64
	Conditions   []string
	MaxTemp      float64
	MinTemp      float64
}

// NewSampleWindow returns an empty window with the extrema at their sentinels.
func NewSampleWindow() SampleWindow {
	return SampleWindow{
		MaxTemp: math.Inf(-1),
		MinTemp: math.Inf(1),
	}
}

// Append records a reading and folds it into the running extrema.
func (w *SampleWindow) Append(tempC float64, condition string) {
	w.Temperatures = append(w.Temperatures, tempC)
	w.Conditions = append(w.Conditions, condition)
	w.MaxTemp = math.Max(w.MaxTemp, tempC)
	w.MinTemp = math.Min(w.MinTemp, tempC)
}

// Len returns the number of samples in the window.
func (w SampleWindow) Len() int {
	return len(w.Temperatures)
}

// Empty reports whether the window has no samples.
func (w SampleWindow) Empty() bool {
	return len(w.Temperatures) == 0
}

// Reset discards all samples.
func (w *SampleWindow) Reset() {
	*w = NewSampleWindow()
}

// Clone returns a deep copy that shares no backing arrays with w.
func (w SampleWindow) Clone() SampleWindow {
	c := w
	c.Temperatures = append([]float64(nil), w.Temperatures...)
	c.Conditions = append([]string(nil), w.Conditions...)
	return c
}

// Status builds the read-only view of the window for a city.
func (w SampleWindow) Status(city string) CityStatus {
	st := CityStatus{
		City:            city,
		LatestCondition: Unavailable,
	}
	if n := len(w.Temperatures); n > 0 {
		st.LatestTemp = Known(w.Temperatures[n-1])
		st.LatestCondition = w.Conditions[n-1]
	}
	if !math.IsInf(w.MaxTemp, -1) {
		st.MaxTemp = Known(w.MaxTemp)
	}
	if !math.IsInf(w.MinTemp, 1) {
		st.MinTemp = Known(w.MinTemp)
	}
	return st
}
