package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. These are detected before any write is attempted.
	ErrInvalidAlias    = errors.New("invalid alias")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrEmptyText       = errors.New("empty text")
	ErrInvalidKind     = errors.New("invalid message kind")
	ErrInvalidInput    = errors.New("invalid input")

	// Storage availability.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
