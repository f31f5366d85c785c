package clock

import "time"

// Clock is the process-wide time source. Everything time-sensitive
// (liveness windows, snooze expiry, reminder lookback) reads through it
// so tests can pin and advance time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}
