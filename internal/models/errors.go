package models

import "errors"

var (
	// ErrNotFound is returned when an assignment or report id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyCompleted is returned on a second submission against a
	// completed assignment; a delivered result is never re-scored.
	ErrAlreadyCompleted = errors.New("assignment already completed")
	// ErrUnauthorized is returned when the actor is neither the owning
	// instructor, the bound student, nor a privileged operator.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation marks malformed input, rejected before any state change.
	ErrValidation = errors.New("validation failed")
	// ErrGenerationFailed is returned when no valid quiz question survived
	// validation; nothing is persisted and the caller may retry.
	ErrGenerationFailed = errors.New("quiz generation failed")
	// ErrReportResolved is returned on an attempt to resolve a report twice.
	ErrReportResolved = errors.New("report already resolved")
)
