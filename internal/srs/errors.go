package srs

import "errors"

// Sentinel errors for the srs package. Check with errors.Is.
var (
	// ErrQualityOutOfRange means the quality grade was outside [0,4].
	// Grades are rejected, never clamped.
	ErrQualityOutOfRange = errors.New("srs: quality out of range")

	// ErrCorruptCard means a card arrived with a violated invariant
	// (e.g. ease factor below the minimum). No update is applied.
	ErrCorruptCard = errors.New("srs: card invariant violated")
)
