// Package common defines shared constants and sentinel errors used across
// the FitSupply client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors (terminal: both tokens have been purged).
	ErrUnauthorized = errors.New("unauthorized")

	// Resource errors.
	ErrNotFound = errors.New("not found")

	// Local persistence errors.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)
