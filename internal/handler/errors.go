package handler

import "errors"

// ErrUnauthorized is returned for commands without valid shared secret.
var ErrUnauthorized = errors.New("sync command not authorized")
