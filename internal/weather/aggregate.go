package weather

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// AggregateWindow reduces a non-empty SampleWindow into a DailySummary.
// The mean is rounded to two decimals; extrema come from the window's running values.
func AggregateWindow(city string, w SampleWindow, at time.Time) DailySummary {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	return DailySummary{
		ID:                newSummaryID(),
		City:              city,
		Date:              at,
		AvgTemp:           Round2(stat.Mean(w.Temperatures, nil)),
		MaxTemp:           w.MaxTemp,
		MinTemp:           w.MinTemp,
		DominantCondition: DominantCondition(w.Conditions),
	}
}

// DominantCondition returns the most frequent label. On a tie the label whose
// running count reaches the maximum first wins, so [A B A B] yields A.
// Returns "" for no conditions.
func DominantCondition(conditions []string) string {
	counts := make(map[string]int, len(conditions))
	best := ""
	bestCount := 0
	for _, c := range conditions {
		counts[c]++
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

func newSummaryID() string {
	return uuid.NewString()
}
