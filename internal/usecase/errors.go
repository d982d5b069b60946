package usecase

import "errors"

// Error taxonomy surfaced to the API layer. Handlers map these to HTTP status
// codes; anything unrecognized becomes a 500.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
)
