// Package memory is an in-process store used for development and tests.
// Units of work are serialized behind one mutex and run against a copy of
// the state that replaces the original only on success.
package memory

import (
	"context"
	"slices"
	"sync"

	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

var _ output.UnitOfWork = (*Store)(nil)

type state struct {
	participants []entities.Participant
	activities   []entities.Activity
	enrollments  []entities.Enrollment
	attendances  []entities.Attendance
	teams        []entities.Team
}

func (s *state) clone() *state {
	c := &state{
		participants: slices.Clone(s.participants),
		activities:   slices.Clone(s.activities),
		enrollments:  slices.Clone(s.enrollments),
		attendances:  slices.Clone(s.attendances),
		teams:        slices.Clone(s.teams),
	}
	for i := range c.teams {
		c.teams[i].MemberIDs = slices.Clone(c.teams[i].MemberIDs)
	}
	return c
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: &state{}}
}

// WithinTx runs fn with exclusive access to a snapshot of the store.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos output.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &repos{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) Participants() output.ParticipantRepository { return &participantRepo{repos{store: s}} }
func (s *Store) Activities() output.ActivityRepository      { return &activityRepo{repos{store: s}} }
func (s *Store) Enrollments() output.EnrollmentRepository   { return &enrollmentRepo{repos{store: s}} }
func (s *Store) Attendances() output.AttendanceRepository   { return &attendanceRepo{repos{store: s}} }
func (s *Store) Teams() output.TeamRepository               { return &teamRepo{repos{store: s}} }

// repos is bound either to a transaction snapshot (st) or to the store,
// in which case every call takes the lock on its own.
type repos struct {
	store *Store
	st    *state
}

func (r *repos) Participants() output.ParticipantRepository { return &participantRepo{*r} }
func (r *repos) Activities() output.ActivityRepository      { return &activityRepo{*r} }
func (r *repos) Enrollments() output.EnrollmentRepository   { return &enrollmentRepo{*r} }
func (r *repos) Attendances() output.AttendanceRepository   { return &attendanceRepo{*r} }
func (r *repos) Teams() output.TeamRepository               { return &teamRepo{*r} }

func (r repos) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.st != nil {
		return fn(r.st)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.st)
}
