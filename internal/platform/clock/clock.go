package clock

import "time"

// Clock abstracts time so "today" stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in the local zone; day boundaries are local midnights.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
