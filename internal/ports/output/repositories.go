package output

import (
	"context"

	"congreso/internal/domain/entities"
)

// ParticipantRepository persists participants. Lookups return
// domain.ErrParticipantNotFound when nothing matches.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *entities.Participant) error
	FindByID(ctx context.Context, id uint) (*entities.Participant, error)
	FindByEmail(ctx context.Context, email string) (*entities.Participant, error)
	// LockByID reads the row and holds it until the unit of work ends.
	LockByID(ctx context.Context, id uint) (*entities.Participant, error)
	AssignWristband(ctx context.Context, id uint, wristband string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.Activity) error
	FindByID(ctx context.Context, id uint) (*entities.Activity, error)
	LockByID(ctx context.Context, id uint) (*entities.Activity, error)
	// List returns activities ordered by start time; an empty type means all.
	List(ctx context.Context, activityType string) ([]entities.Activity, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

// EnrollmentRepository persists workshop enrollments. Waitlist order is
// (created_at, id) ascending.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entities.Enrollment) error
	FindActiveByParticipant(ctx context.Context, participantID uint) (*entities.Enrollment, error)
	FindActive(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	NextWaitlisted(ctx context.Context, activityID uint) (*entities.Enrollment, error)
	CountByActivityAndStatus(ctx context.Context, activityID uint, status string) (int, error)
	FindByActivityAndStatus(ctx context.Context, activityID uint, status string) ([]entities.Enrollment, error)
}

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entities.Attendance) error
	Exists(ctx context.Context, participantID, activityID uint) (bool, error)
	CountByParticipantAndStatus(ctx context.Context, participantID uint, status string) (int, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	FindTeamIDByMember(ctx context.Context, participantID uint) (uint, bool, error)
	FindByState(ctx context.Context, state string) (*entities.Team, bool, error)
	List(ctx context.Context) ([]entities.Team, error)
}
