package domain

import "errors"

// ErrInvalidInput is returned when a request cannot be analyzed at all,
// most commonly because no files were provided.
var ErrInvalidInput = errors.New("invalid input")
