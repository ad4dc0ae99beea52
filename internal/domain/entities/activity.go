package entities

import (
	"time"

	"congreso/internal/domain"
)

// Activity is a schedulable event: workshop, conference or forum.
type Activity struct {
	ID          uint
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	Type        string
	MaxCapacity int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWorkshop reports whether the activity takes enrollments.
func (a *Activity) IsWorkshop() bool {
	return a.Type == domain.ActivityWorkshop
}
