package weather

import (
	"errors"
	"sync"
	"testing"
)

func TestNewEngineKeepsOrderAndDropsDuplicates(t *testing.T) {
	e := NewEngine([]string{"Delhi", "", "Mumbai", "Delhi", "Chennai"}, 35, 2)
	got := e.Cities()
	want := []string{"Delhi", "Mumbai", "Chennai"}
	if len(got) != len(want) {
		t.Fatalf("cities = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cities = %v, want %v", got, want)
		}
	}
}

func TestEngineRecordUnknownCity(t *testing.T) {
	e := NewEngine([]string{"Delhi"}, 35, 2)
	if _, _, err := e.Record("Paris", 20, "Clear"); !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("err = %v, want ErrUnknownCity", err)
	}
}

func TestEngineRecordFiresAlert(t *testing.T) {
	e := NewEngine([]string{"Delhi"}, 35, 2)

	if _, fired, _ := e.Record("Delhi", 36, "Clear"); fired {
		t.Fatalf("alert fired on first breach")
	}
	alert, fired, err := e.Record("Delhi", 37.5, "Clear")
	if err != nil || !fired {
		t.Fatalf("fired=%v err=%v, want alert", fired, err)
	}
	if alert.City != "Delhi" || alert.Temperature != 37.5 || alert.Breaches != 2 || alert.Threshold != 35 {
		t.Fatalf("unexpected alert %+v", alert)
	}
	if n, _ := e.breaches("Delhi"); n != 0 {
		t.Fatalf("breach counter = %d after alert", n)
	}
}

func TestEngineDrainResetsWindowAndBreaches(t *testing.T) {
	e := NewEngine([]string{"Delhi"}, 35, 3)
	e.Record("Delhi", 36, "Clear")
	e.Record("Delhi", 37, "Clear")

	w, ok, err := e.Drain("Delhi")
	if err != nil || !ok {
		t.Fatalf("drain ok=%v err=%v", ok, err)
	}
	if w.Len() != 2 || w.MaxTemp != 37 || w.MinTemp != 36 {
		t.Fatalf("drained window %+v", w)
	}

	cur, _ := e.window("Delhi")
	if !cur.Empty() {
		t.Fatalf("window not reset")
	}
	if n, _ := e.breaches("Delhi"); n != 0 {
		t.Fatalf("breaches = %d, want 0", n)
	}

	if _, ok, _ := e.Drain("Delhi"); ok {
		t.Fatalf("second drain reported data")
	}
}

func TestEngineSnapshotDoesNotMutate(t *testing.T) {
	e := NewEngine([]string{"Delhi", "Mumbai"}, 35, 2)
	e.Record("Mumbai", 29, "Rain")

	snap := e.Snapshot()
	if len(snap) != 2 || snap[0].City != "Delhi" || snap[1].City != "Mumbai" {
		t.Fatalf("snapshot order %+v", snap)
	}
	if snap[0].LatestTemp.Valid {
		t.Fatalf("Delhi should be unavailable")
	}
	if !snap[1].LatestTemp.Valid || snap[1].LatestTemp.Value != 29 || snap[1].LatestCondition != "Rain" {
		t.Fatalf("Mumbai status %+v", snap[1])
	}

	w, _ := e.window("Mumbai")
	if w.Len() != 1 {
		t.Fatalf("snapshot changed window: len=%d", w.Len())
	}
}

// Run with -race: appends and drains for the same city must not interleave.
func TestEngineConcurrentRecordAndDrain(t *testing.T) {
	e := NewEngine([]string{"Delhi"}, 35, 2)

	const writers, perWriter = 8, 200
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		drained int
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				e.Record("Delhi", float64(20+i), "Clear")
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for k := 0; k < 50; k++ {
			w, ok, _ := e.Drain("Delhi")
			if !ok {
				continue
			}
			if len(w.Temperatures) != len(w.Conditions) || w.MaxTemp < w.MinTemp {
				t.Errorf("torn window: %d temps, %d conds, max %v min %v",
					len(w.Temperatures), len(w.Conditions), w.MaxTemp, w.MinTemp)
			}
			mu.Lock()
			drained += w.Len()
			mu.Unlock()
		}
	}()

	wg.Wait()
	<-done

	rest, _, _ := e.Drain("Delhi")
	if total := drained + rest.Len(); total != writers*perWriter {
		t.Fatalf("lost samples: got %d, want %d", total, writers*perWriter)
	}
}
