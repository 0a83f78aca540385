package matchdb

import "errors"

// ErrMatchNotFound is returned when no match row exists for the requested ID.
var ErrMatchNotFound = errors.New("match not found")
