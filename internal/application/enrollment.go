package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
)

// raceAttempts bounds how often a unit of work that lost a capacity race is replayed.
const raceAttempts = 2

// notifyTimeout bounds one promotion announcement.
const notifyTimeout = 10 * time.Second

var _ input.EnrollmentUseCase = (*EnrollmentService)(nil)

type EnrollmentService struct {
	store    output.UnitOfWork
	windows  *domain.Windows
	logger   *zap.Logger
	metrics  output.Metrics
	notifier output.Notifier

	// announcements tracks notifications still in flight.
	announcements sync.WaitGroup
}

func NewEnrollmentService(deps Deps) *EnrollmentService {
	deps = deps.withDefaults()
	return &EnrollmentService{
		store:    deps.Store,
		windows:  deps.Windows,
		logger:   deps.Logger.Named("enrollment"),
		metrics:  deps.Metrics,
		notifier: deps.Notifier,
	}
}

// Enroll claims a seat in the workshop, or a place at the end of its
// waitlist when the workshop is full. A participant holds at most one
// non-cancelled enrollment across all workshops.
func (s *EnrollmentService) Enroll(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error) {
	fields := []zap.Field{zap.Uint("participant_id", participantID), zap.Uint("activity_id", activityID)}
	if err := s.windows.Require(domain.WindowWorkshops, time.Time{}); err != nil {
		reject(s.logger, s.metrics, "enroll", err, fields...)
		return nil, err
	}

	var created *entities.Enrollment
	err := s.retryRace(ctx, "enroll", func() error {
		return s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
			e, err := s.enroll(ctx, repos, participantID, activityID)
			created = e
			return err
		})
	})
	if err != nil {
		reject(s.logger, s.metrics, "enroll", err, fields...)
		return nil, err
	}

	s.metrics.EnrollmentResolved(created.Status)
	s.logger.Info("enrollment created", append(fields, zap.String("status", created.Status))...)
	return created, nil
}

// enroll locks the participant row, then the activity row. Cancel takes the
// same locks in the same order.
func (s *EnrollmentService) enroll(ctx context.Context, repos output.Repositories, participantID, activityID uint) (*entities.Enrollment, error) {
	if _, err := repos.Participants().LockByID(ctx, participantID); err != nil {
		return nil, err
	}

	_, err := repos.Enrollments().FindActiveByParticipant(ctx, participantID)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyEnrolled
	case !errors.Is(err, domain.ErrEnrollmentNotFound):
		return nil, err
	}

	activity, err := repos.Activities().LockByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return nil, domain.ErrWorkshopNotFound
		}
		return nil, err
	}
	if !activity.Active || !activity.IsWorkshop() {
		return nil, domain.ErrWorkshopNotFound
	}

	occ, err := occupancyOf(ctx, repos, activity)
	if err != nil {
		return nil, err
	}

	status := domain.StatusWaitlisted
	if occ.HasSeat() {
		status = domain.StatusEnrolled
	}
	now := s.windows.Now()
	enrollment := &entities.Enrollment{
		ParticipantID: participantID,
		ActivityID:    activityID,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := repos.Enrollments().Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Cancel ends the participant's enrollment in the workshop. A freed seat goes
// to the earliest waitlisted row inside the same transaction.
func (s *EnrollmentService) Cancel(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error) {
	fields := []zap.Field{zap.Uint("participant_id", participantID), zap.Uint("activity_id", activityID)}

	var (
		cancelled *entities.Enrollment
		promoted  *entities.Enrollment
		activity  *entities.Activity
	)
	err := s.retryRace(ctx, "cancel", func() error {
		return s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
			var err error
			cancelled, promoted, activity, err = s.cancel(ctx, repos, participantID, activityID)
			return err
		})
	})
	if err != nil {
		reject(s.logger, s.metrics, "cancel", err, fields...)
		return nil, err
	}

	s.logger.Info("enrollment cancelled", fields...)
	if promoted != nil {
		s.metrics.WaitlistPromoted()
		s.logger.Info("waitlist promoted",
			zap.Uint("activity_id", activityID),
			zap.Uint("participant_id", promoted.ParticipantID),
			zap.Uint("enrollment_id", promoted.ID),
		)
		s.announce(ctx, activity, promoted)
	}
	return cancelled, nil
}

func (s *EnrollmentService) cancel(ctx context.Context, repos output.Repositories, participantID, activityID uint) (cancelled, promoted *entities.Enrollment, activity *entities.Activity, err error) {
	if _, err = repos.Participants().LockByID(ctx, participantID); err != nil {
		return nil, nil, nil, err
	}
	if activity, err = repos.Activities().LockByID(ctx, activityID); err != nil {
		return nil, nil, nil, err
	}

	cancelled, err = repos.Enrollments().FindActive(ctx, participantID, activityID)
	if err != nil {
		return nil, nil, nil, err
	}
	wasEnrolled := cancelled.Status == domain.StatusEnrolled
	if err = repos.Enrollments().UpdateStatus(ctx, cancelled.ID, domain.StatusCancelled); err != nil {
		return nil, nil, nil, err
	}
	cancelled.Status = domain.StatusCancelled
	cancelled.UpdatedAt = s.windows.Now()
	if !wasEnrolled {
		return cancelled, nil, activity, nil
	}

	promoted, err = promoteNext(ctx, repos, activity)
	if err != nil {
		return nil, nil, nil, err
	}
	return cancelled, promoted, activity, nil
}

// promoteNext moves the head of the waitlist into a free seat, if both exist.
func promoteNext(ctx context.Context, repos output.Repositories, activity *entities.Activity) (*entities.Enrollment, error) {
	occ, err := occupancyOf(ctx, repos, activity)
	if err != nil {
		return nil, err
	}
	if !occ.HasSeat() {
		return nil, nil
	}
	next, err := repos.Enrollments().NextWaitlisted(ctx, activity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := repos.Enrollments().UpdateStatus(ctx, next.ID, domain.StatusEnrolled); err != nil {
		return nil, fmt.Errorf("promote enrollment %d: %w", next.ID, err)
	}
	next.Status = domain.StatusEnrolled
	return next, nil
}

// announce notifies the promotion in the background, detached from the
// request so a slow notifier never delays the cancellation.
func (s *EnrollmentService) announce(ctx context.Context, activity *entities.Activity, promoted *entities.Enrollment) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	s.announcements.Add(1)
	go func() {
		defer s.announcements.Done()
		defer cancel()

		participant, err := s.store.Participants().FindByID(ctx, promoted.ParticipantID)
		if err != nil {
			s.logger.Warn("load promoted participant", zap.Uint("enrollment_id", promoted.ID), zap.Error(err))
			return
		}
		if err := s.notifier.WaitlistPromoted(ctx, activity, participant); err != nil {
			s.logger.Warn("notify waitlist promotion", zap.Uint("enrollment_id", promoted.ID), zap.Error(err))
		}
	}()
}

// Shutdown waits for pending promotion notifications until ctx is done.
func (s *EnrollmentService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.announcements.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StatusFor reports the participant's standing in one workshop.
func (s *EnrollmentService) StatusFor(ctx context.Context, participantID, activityID uint) (entities.EnrollmentStatus, error) {
	e, err := s.store.Enrollments().FindActive(ctx, participantID, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return entities.EnrollmentStatus{}, nil
		}
		return entities.EnrollmentStatus{}, err
	}
	return entities.EnrollmentStatus{
		Enrolled:   e.Status == domain.StatusEnrolled,
		Waitlisted: e.Status == domain.StatusWaitlisted,
	}, nil
}

// Occupancy reads the seat ledger of a workshop.
func (s *EnrollmentService) Occupancy(ctx context.Context, activityID uint) (domain.Occupancy, error) {
	activity, err := s.workshop(ctx, activityID)
	if err != nil {
		return domain.Occupancy{}, err
	}
	return occupancyOf(ctx, s.store, activity)
}

// WorkshopOccupancy lists the ledger of every active workshop.
func (s *EnrollmentService) WorkshopOccupancy(ctx context.Context) ([]input.WorkshopOccupancy, error) {
	workshops, err := s.store.Activities().List(ctx, domain.ActivityWorkshop)
	if err != nil {
		return nil, err
	}
	out := make([]input.WorkshopOccupancy, 0, len(workshops))
	for i := range workshops {
		if !workshops[i].Active {
			continue
		}
		occ, err := occupancyOf(ctx, s.store, &workshops[i])
		if err != nil {
			return nil, err
		}
		out = append(out, input.WorkshopOccupancy{Activity: workshops[i], Occupancy: occ})
	}
	return out, nil
}

// Waitlist returns the waitlisted rows of a workshop, head first.
func (s *EnrollmentService) Waitlist(ctx context.Context, activityID uint) ([]entities.Enrollment, error) {
	if _, err := s.workshop(ctx, activityID); err != nil {
		return nil, err
	}
	return s.store.Enrollments().FindByActivityAndStatus(ctx, activityID, domain.StatusWaitlisted)
}

func (s *EnrollmentService) workshop(ctx context.Context, activityID uint) (*entities.Activity, error) {
	activity, err := s.store.Activities().FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return nil, domain.ErrWorkshopNotFound
		}
		return nil, err
	}
	if !activity.IsWorkshop() {
		return nil, domain.ErrWorkshopNotFound
	}
	return activity, nil
}

func (s *EnrollmentService) retryRace(ctx context.Context, operation string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= raceAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrCapacityRace) || ctx.Err() != nil {
			return err
		}
		s.logger.Warn("capacity race, retrying", zap.String("operation", operation), zap.Int("attempt", attempt))
	}
	return err
}

func occupancyOf(ctx context.Context, repos output.Repositories, activity *entities.Activity) (domain.Occupancy, error) {
	enrolled, err := repos.Enrollments().CountByActivityAndStatus(ctx, activity.ID, domain.StatusEnrolled)
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("count enrolled: %w", err)
	}
	waitlisted, err := repos.Enrollments().CountByActivityAndStatus(ctx, activity.ID, domain.StatusWaitlisted)
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("count waitlisted: %w", err)
	}
	return domain.Occupancy{
		ActivityID:    activity.ID,
		EnrolledCount: enrolled,
		MaxCapacity:   activity.MaxCapacity,
		WaitlistCount: waitlisted,
	}, nil
}
