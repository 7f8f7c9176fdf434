package weather

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSampleWindowTracksExtrema(t *testing.T) {
	samples := []float64{21.4, 19.9, 25.02, 25.01, -3.5, 0, 12}

	w := NewSampleWindow()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range samples {
		w.Append(s, "Clear")
		lo, hi = math.Min(lo, s), math.Max(hi, s)

		if w.MaxTemp != hi || w.MinTemp != lo {
			t.Fatalf("after %d samples: max=%v min=%v, want %v %v", i+1, w.MaxTemp, w.MinTemp, hi, lo)
		}
		if len(w.Temperatures) != len(w.Conditions) {
			t.Fatalf("series length mismatch: %d vs %d", len(w.Temperatures), len(w.Conditions))
		}
	}
	if w.Len() != len(samples) {
		t.Fatalf("Len() = %d, want %d", w.Len(), len(samples))
	}
}

func TestSampleWindowReset(t *testing.T) {
	w := NewSampleWindow()
	w.Append(30, "Rain")
	w.Reset()

	if !w.Empty() {
		t.Fatalf("window not empty after reset")
	}
	if !math.IsInf(w.MaxTemp, -1) || !math.IsInf(w.MinTemp, 1) {
		t.Fatalf("extrema not back at sentinels: %v %v", w.MaxTemp, w.MinTemp)
	}
}

func TestSampleWindowCloneIsIndependent(t *testing.T) {
	w := NewSampleWindow()
	w.Append(30, "Rain")
	c := w.Clone()
	c.Temperatures[0] = 99
	c.Conditions[0] = "Snow"

	if w.Temperatures[0] != 30 || w.Conditions[0] != "Rain" {
		t.Fatalf("clone shares storage with original")
	}
}

func TestStatusOfEmptyWindowIsUnavailable(t *testing.T) {
	st := NewSampleWindow().Status("Delhi")

	if st.City != "Delhi" {
		t.Fatalf("city = %q", st.City)
	}
	if st.LatestTemp.Valid || st.MaxTemp.Valid || st.MinTemp.Valid {
		t.Fatalf("expected all temperatures unavailable, got %+v", st)
	}
	if st.LatestCondition != Unavailable {
		t.Fatalf("latest condition = %q", st.LatestCondition)
	}

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"city":"Delhi","latestTemp":"N/A","latestCondition":"N/A","maxTemp":"N/A","minTemp":"N/A"}`
	if string(b) != want {
		t.Fatalf("json = %s\nwant  %s", b, want)
	}
}

func TestStatusReportsLatest(t *testing.T) {
	w := NewSampleWindow()
	w.Append(30, "Clear")
	w.Append(28.5, "Clouds")

	b, err := json.Marshal(w.Status("Mumbai"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"city":"Mumbai","latestTemp":28.5,"latestCondition":"Clouds","maxTemp":30,"minTemp":28.5}`
	if string(b) != want {
		t.Fatalf("json = %s\nwant  %s", b, want)
	}
}
