package utils

import "time"

// Clock abstracts the current time so lifecycle rules that compare against
// deadlines (auction stop times, bid expiries) can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock, in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports the same instant. Intended for tests.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
