package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The effective-day calculator reads it once per computation pass; callers
// must not cache the result across a day boundary.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
