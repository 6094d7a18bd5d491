package store

import "errors"

// ErrRunNotFound indicates the requested run has no archived record.
var ErrRunNotFound = errors.New("store: run not found")
