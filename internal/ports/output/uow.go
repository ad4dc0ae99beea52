package output

import "context"

// Repositories groups the repositories bound to one connection or transaction.
type Repositories interface {
	Participants() ParticipantRepository
	Activities() ActivityRepository
	Enrollments() EnrollmentRepository
	Attendances() AttendanceRepository
	Teams() TeamRepository
}

// UnitOfWork hands out repositories outside a transaction for plain reads and
// runs fn inside one transaction. WithinTx commits when fn returns nil and
// rolls back on error or panic.
type UnitOfWork interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
