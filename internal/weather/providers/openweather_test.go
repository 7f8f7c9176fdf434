package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testOpenWeather(t *testing.T, h http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p := NewOpenWeatherProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL
	p.httpCfg.Backoff.InitialInterval = time.Millisecond
	p.httpCfg.Backoff.MaxInterval = 5 * time.Millisecond
	return p
}

func TestOpenWeatherFetch(t *testing.T) {
	p := testOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Delhi" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q", got)
		}
		if r.URL.Query().Has("units") {
			t.Errorf("units must be left at the Kelvin default")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dt":1700000000,"main":{"temp":309.15},"weather":[{"main":"Haze"},{"main":"Smoke"}]}`))
	})

	r, err := p.Fetch(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if r.TemperatureK != 309.15 || r.Condition != "Haze" || r.City != "Delhi" {
		t.Fatalf("reading %+v", r)
	}
	if !r.Timestamp.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("timestamp %v", r.Timestamp)
	}
}

func TestOpenWeatherSingleAttemptByDefault(t *testing.T) {
	var calls int32
	p := testOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := p.Fetch(context.Background(), "Mumbai")
	if !errors.Is(err, errServerError) {
		t.Fatalf("err = %v, want errServerError", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestOpenWeatherRetriesServerErrors(t *testing.T) {
	var calls int32
	p := testOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"main":{"temp":300},"weather":[{"main":"Clear"}]}`))
	})
	p.httpCfg.Backoff.MaxRetries = 3

	r, err := p.Fetch(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if r.TemperatureK != 300 || calls != 3 {
		t.Fatalf("reading %+v after %d calls", r, calls)
	}
}

func TestOpenWeatherDoesNotRetryBadKey(t *testing.T) {
	var calls int32
	p := testOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	p.httpCfg.Backoff.MaxRetries = 3

	_, err := p.Fetch(context.Background(), "Mumbai")
	if !errors.Is(err, errUnauthorized) {
		t.Fatalf("err = %v, want errUnauthorized", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestOpenWeatherMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>`,
		"missing weather": `{"main":{"temp":300},"weather":[]}`,
		"missing main":    `{"weather":[{"main":"Clear"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := testOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			if _, err := p.Fetch(context.Background(), "Chennai"); !errors.Is(err, errMalformed) {
				t.Fatalf("err = %v, want errMalformed", err)
			}
		})
	}
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	if _, err := p.Fetch(context.Background(), "Delhi"); !errors.Is(err, errNoAPIKey) {
		t.Fatalf("err = %v", err)
	}
}
