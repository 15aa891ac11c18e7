package fetcher

import "errors"

var (
	// ErrStatusNotOK is returned when http response had status other than 2xx.
	ErrStatusNotOK = errors.New("response status is not 2xx")
	// ErrContentTypeNotSupported is returned when response content type is not supported.
	ErrContentTypeNotSupported = errors.New("response content type not supported")
	// ErrTooLarge is returned when response body exceeds size limit.
	ErrTooLarge = errors.New("response body too large")
)
