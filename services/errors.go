package services

import "errors"

// Business-rule failures. Every engine operation either succeeds or
// returns exactly one of these (possibly wrapped) with no state mutated.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCapacityExceeded  = errors.New("case team is at maximum capacity")
	ErrCaseNotModifiable = errors.New("case is in a final status")
	ErrInvalidDuration   = errors.New("time entry duration must be positive")
	ErrMissingReason     = errors.New("rejection reason is required")
	ErrNotBillable       = errors.New("time entry is not billable")
	ErrNotFound          = errors.New("record not found")

	ErrAlreadyAssigned   = errors.New("lawyer is already on the case team")
	ErrTeamBelowMinimum  = errors.New("case team is below the minimum size")
	ErrInvalidBounds     = errors.New("invalid lawyer count bounds")
	ErrInvalidRate       = errors.New("hourly rate cannot be negative")
	ErrLawyerUnavailable = errors.New("lawyer cannot take more assignments")
)

// Request-level failures raised by the application services.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("status change requires confirmation")
)

// ErrConcurrentModification is returned by the repository when the stored
// version no longer matches the one the aggregate was loaded with.
var ErrConcurrentModification = errors.New("record was modified concurrently")
