package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or is not owned by the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank name, unparsable date, non-positive party size).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
