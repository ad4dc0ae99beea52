package output

import (
	"context"

	"congreso/internal/domain/entities"
)

// Notifier announces enrollment changes outside the request, e.g. to the
// organizers' channel. Failures are logged, never returned to the caller.
type Notifier interface {
	WaitlistPromoted(ctx context.Context, activity *entities.Activity, participant *entities.Participant) error
}

// Metrics records business counters.
type Metrics interface {
	EnrollmentResolved(status string)
	WaitlistPromoted()
	AttendanceRecorded()
	Rejected(operation, code string)
}
