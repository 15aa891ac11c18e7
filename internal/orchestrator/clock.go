package orchestrator

import "time"

type systemClock struct{}

// Now returns current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
