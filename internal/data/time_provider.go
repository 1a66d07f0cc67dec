package data

import "time"

// TimeProvider abstracts the clock so repositories can be tested with fixed
// timestamps.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider always returns the same instant; for tests.
type FixedTimeProvider struct {
	Time time.Time
}

func (p FixedTimeProvider) Now() time.Time { return p.Time }
