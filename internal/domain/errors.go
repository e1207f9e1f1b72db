package domain

import "errors"

var (
	// ErrNotFound indicates the requested cart or item was not found.
	ErrNotFound = errors.New("not found")
	// ErrExpired indicates the cart existed but its TTL has elapsed.
	ErrExpired = errors.New("expired")
	// ErrValidation indicates caller-supplied input violates a business rule.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is reserved for idempotency clashes; no operation raises it yet.
	ErrConflict = errors.New("conflict")
)
