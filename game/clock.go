package game

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Readings from SystemClock carry Go's
// monotonic clock, so elapsed durations are immune to wall-clock changes.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

var SystemClock Clock = systemClock{}

// FormatSeconds renders a duration as seconds with two decimals.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%0.2f", d.Seconds())
}
