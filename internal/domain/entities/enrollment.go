package entities

import (
	"time"

	"congreso/internal/domain"
)

// Enrollment ties a participant to a workshop seat or its waitlist.
type Enrollment struct {
	ID            uint
	ParticipantID uint
	ActivityID    uint
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive is true for enrolled and waitlisted rows.
func (e *Enrollment) IsActive() bool {
	return e.Status != domain.StatusCancelled
}

// EnrollmentStatus is the per-workshop view returned to a participant.
type EnrollmentStatus struct {
	Enrolled   bool
	Waitlisted bool
}
