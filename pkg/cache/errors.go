package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("cache closed")

	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown cache backend")
)
