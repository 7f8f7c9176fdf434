package weather

// BreachTracker counts consecutive readings above a threshold for one city.
// An alert is an edge: it fires once when the count reaches Required and the
// count starts over.
type BreachTracker struct {
	Threshold float64
	Required  int

	consecutive int
}

// NewBreachTracker returns a tracker with a zero counter. Required below 1 is
// treated as 1.
func NewBreachTracker(threshold float64, required int) BreachTracker {
	if required < 1 {
		required = 1
	}
	return BreachTracker{Threshold: threshold, Required: required}
}

// Evaluate folds tempC into the counter and reports whether an alert fired.
// count is the counter after the reading, or the value that fired the alert.
func (b *BreachTracker) Evaluate(tempC float64) (fired bool, count int) {
	if tempC <= b.Threshold {
		b.consecutive = 0
		return false, 0
	}

	b.consecutive++
	if b.consecutive >= b.Required {
		count = b.consecutive
		b.consecutive = 0
		return true, count
	}
	return false, b.consecutive
}

// Consecutive returns the current counter value.
func (b BreachTracker) Consecutive() int {
	return b.consecutive
}

// Reset zeroes the counter.
func (b *BreachTracker) Reset() {
	b.consecutive = 0
}
