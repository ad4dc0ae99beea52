package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP statuses and message keys.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyEnrolled = errors.New("participant already holds a workshop enrollment")
	ErrDuplicate       = errors.New("already exists")
	ErrOutOfWindow     = errors.New("outside the permitted time window")
	ErrCapacityRace    = errors.New("seat no longer available")
	ErrValidation      = errors.New("invalid input")
	ErrStateTaken      = errors.New("state already has a team")
)

// Specific errors, each wrapping one kind.
var (
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrActivityNotFound    = fmt.Errorf("activity %w", ErrNotFound)
	ErrWorkshopNotFound    = fmt.Errorf("workshop %w", ErrNotFound)
	ErrEnrollmentNotFound  = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrEmailTaken          = fmt.Errorf("email %w", ErrDuplicate)
	ErrWristbandTaken      = fmt.Errorf("wristband %w", ErrDuplicate)
	ErrAttendanceRecorded  = fmt.Errorf("attendance %w", ErrDuplicate)
	ErrAlreadyInTeam       = fmt.Errorf("team member %w", ErrDuplicate)
)

// WindowError reports which window rejected the action.
type WindowError struct {
	Window string
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Window, ErrOutOfWindow)
}

func (e *WindowError) Is(target error) bool {
	return target == ErrOutOfWindow
}

// ValidationError carries the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Code returns a stable identifier for a domain error, or "" for anything
// that is not a business rule failure.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, ErrWorkshopNotFound):
		return "workshop_not_found"
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, ErrEnrollmentNotFound):
		return "enrollment_not_found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyEnrolled):
		return "already_enrolled"
	case errors.Is(err, ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, ErrWristbandTaken):
		return "wristband_taken"
	case errors.Is(err, ErrAttendanceRecorded):
		return "attendance_recorded"
	case errors.Is(err, ErrAlreadyInTeam):
		return "already_in_team"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrOutOfWindow):
		return "out_of_window"
	case errors.Is(err, ErrCapacityRace):
		return "capacity_race"
	case errors.Is(err, ErrStateTaken):
		return "state_taken"
	case errors.Is(err, ErrValidation):
		return "validation"
	}
	return ""
}
