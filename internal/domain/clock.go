package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// It drives the alert window and the evaluation timestamp.
var clock = clockwork.NewRealClock()

// Now returns the current evaluation time in UTC.
func Now() time.Time {
	return clock.Now().UTC()
}

// SetClock swaps the time source for evaluation. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
