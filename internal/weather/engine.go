package weather

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownCity is returned for a city that is not tracked by the engine.
var ErrUnknownCity = errors.New("city is not tracked")

// cityState is the lock domain for one city: its window and breach counter
// are only touched together under mu.
type cityState struct {
	mu       sync.Mutex
	window   SampleWindow
	breaches BreachTracker
}

// Engine owns the per-city accumulation state. The set of cities is fixed at
// construction, so the map itself is never written after NewEngine.
type Engine struct {
	cities []string
	state  map[string]*cityState
}

// NewEngine creates empty state for every city, keeping the given order.
// Blank and repeated names are ignored.
func NewEngine(cities []string, threshold float64, required int) *Engine {
	e := &Engine{
		state: make(map[string]*cityState, len(cities)),
	}
	for _, c := range cities {
		if c == "" {
			continue
		}
		if _, ok := e.state[c]; ok {
			continue
		}
		e.cities = append(e.cities, c)
		e.state[c] = &cityState{
			window:   NewSampleWindow(),
			breaches: NewBreachTracker(threshold, required),
		}
	}
	return e
}

// Cities returns the tracked cities in configuration order.
func (e *Engine) Cities() []string {
	return append([]string(nil), e.cities...)
}

func (e *Engine) lookup(city string) (*cityState, error) {
	st, ok := e.state[city]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCity, city)
	}
	return st, nil
}

// Record appends a reading and evaluates the breach counter as one step.
// When the reading completes a run of breaches, the returned bool is true.
func (e *Engine) Record(city string, tempC float64, condition string) (Alert, bool, error) {
	st, err := e.lookup(city)
	if err != nil {
		return Alert{}, false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.window.Append(tempC, condition)
	fired, count := st.breaches.Evaluate(tempC)
	if !fired {
		return Alert{}, false, nil
	}
	return Alert{
		City:        city,
		Temperature: tempC,
		Threshold:   st.breaches.Threshold,
		Breaches:    count,
		Timestamp:   time.Now().UTC(),
	}, true, nil
}

// Drain hands back the city's window and resets both the window and the breach
// counter. An empty window is left untouched and ok is false.
func (e *Engine) Drain(city string) (w SampleWindow, ok bool, err error) {
	st, err := e.lookup(city)
	if err != nil {
		return SampleWindow{}, false, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.window.Empty() {
		return SampleWindow{}, false, nil
	}
	w = st.window
	st.window = NewSampleWindow()
	st.breaches.Reset()
	return w, true, nil
}

// Snapshot returns one status per city in configuration order.
func (e *Engine) Snapshot() []CityStatus {
	out := make([]CityStatus, 0, len(e.cities))
	for _, c := range e.cities {
		st := e.state[c]
		st.mu.Lock()
		out = append(out, st.window.Status(c))
		st.mu.Unlock()
	}
	return out
}
