package services

import "errors"

// Errors shared across services and mapped to HTTP responses at the
// handler layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed      = errors.New("validation failed")
	ErrTournamentNameMissing = errors.New("tournament name is required")
	ErrTournamentInvalidURL  = errors.New("tournament source url must point at n01darts.com")
	ErrTournamentInvalidDate = errors.New("tournament date could not be parsed")
	ErrTournamentNotFound    = errors.New("tournament not found")

	// ErrStatsUnavailable marks stats requests for tournaments the
	// upstream site publishes no statistics page for (soft discipline).
	ErrStatsUnavailable = errors.New("tournament statistics not available for this dart type")
)
