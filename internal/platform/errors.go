package platform

import (
	"errors"
)

var (
	// ErrAlreadyRunning is returned when run can't be started because previous run of the source is not finished yet.
	ErrAlreadyRunning = errors.New("sync already running for this source")
	// ErrNotFound is returned when requested record doesn't exist.
	ErrNotFound = errors.New("record not found")
)
