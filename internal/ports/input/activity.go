package input

import (
	"context"
	"time"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

// CreateActivity is validated after trimming. Workshops need at least one seat.
type CreateActivity struct {
	Title       string    `validate:"required,max=200"`
	Description string    `validate:"max=2000"`
	StartsAt    time.Time `validate:"required"`
	EndsAt      time.Time `validate:"required,gtfield=StartsAt"`
	Location    string    `validate:"max=200"`
	Type        string    `validate:"required,oneof=workshop conference forum"`
	MaxCapacity int       `validate:"required_if=Type workshop,min=0,max=10000"`
}

type ActivityUseCase interface {
	CreateActivity(ctx context.Context, req CreateActivity) (*entities.Activity, error)
	GetActivity(ctx context.Context, id uint) (*entities.Activity, error)
	ListActivities(ctx context.Context, activityType string) ([]entities.Activity, error)
	SetActive(ctx context.Context, id uint, active bool) (*entities.Activity, error)
}

// EnrollmentUseCase is the workshop seat state machine.
type EnrollmentUseCase interface {
	Enroll(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error)
	Cancel(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error)
	StatusFor(ctx context.Context, participantID, activityID uint) (entities.EnrollmentStatus, error)
	Occupancy(ctx context.Context, activityID uint) (domain.Occupancy, error)
	WorkshopOccupancy(ctx context.Context) ([]WorkshopOccupancy, error)
	Waitlist(ctx context.Context, activityID uint) ([]entities.Enrollment, error)
}

type WorkshopOccupancy struct {
	Activity  entities.Activity
	Occupancy domain.Occupancy
}
