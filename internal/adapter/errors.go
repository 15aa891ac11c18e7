package adapter

import "errors"

var (
	// ErrUnknownKind is returned when source kind has no adapter.
	ErrUnknownKind = errors.New("unknown source kind")
	// ErrRendererDisabled is returned when source needs browser rendering, but no renderer is configured.
	ErrRendererDisabled = errors.New("browser rendering is disabled")
	// ErrNoListingData is returned when page has no embedded listing data.
	ErrNoListingData = errors.New("page has no listing data")
)
