package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
)

// RequiredAttendances is the number of "presente" marks a participant needs
// for a certificate.
const RequiredAttendances = 2

// certificateNamespace seeds the deterministic certificate folio.
var certificateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:congreso:constancia"))

var _ input.AttendanceUseCase = (*AttendanceService)(nil)

type AttendanceService struct {
	store   output.UnitOfWork
	windows *domain.Windows
	logger  *zap.Logger
	metrics output.Metrics
}

func NewAttendanceService(deps Deps) *AttendanceService {
	deps = deps.withDefaults()
	return &AttendanceService{
		store:   deps.Store,
		windows: deps.Windows,
		logger:  deps.Logger.Named("attendance"),
		metrics: deps.Metrics,
	}
}

// Record marks the participant present at the activity. It is only allowed
// inside the attendance window around the activity start, once per pair.
func (s *AttendanceService) Record(ctx context.Context, participantID, activityID uint) (*entities.Attendance, error) {
	fields := []zap.Field{zap.Uint("participant_id", participantID), zap.Uint("activity_id", activityID)}

	var recorded *entities.Attendance
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
		if _, err := repos.Participants().FindByID(ctx, participantID); err != nil {
			return err
		}
		activity, err := repos.Activities().FindByID(ctx, activityID)
		if err != nil {
			return err
		}
		if !activity.Active {
			return domain.ErrActivityNotFound
		}
		if err := s.windows.Require(domain.WindowAttendance, activity.StartsAt); err != nil {
			return err
		}

		exists, err := repos.Attendances().Exists(ctx, participantID, activityID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAttendanceRecorded
		}
		a := &entities.Attendance{
			ParticipantID: participantID,
			ActivityID:    activityID,
			Status:        domain.AttendancePresent,
			RecordedAt:    s.windows.Now(),
		}
		if err := repos.Attendances().Create(ctx, a); err != nil {
			return err
		}
		recorded = a
		return nil
	})
	if err != nil {
		reject(s.logger, s.metrics, "record attendance", err, fields...)
		return nil, err
	}

	s.metrics.AttendanceRecorded()
	s.logger.Info("attendance recorded", fields...)
	return recorded, nil
}

// Eligibility counts the participant's "presente" marks against
// RequiredAttendances. Eligible participants get a stable folio.
func (s *AttendanceService) Eligibility(ctx context.Context, participantID uint) (entities.Eligibility, error) {
	participant, err := s.store.Participants().FindByID(ctx, participantID)
	if err != nil {
		return entities.Eligibility{}, err
	}
	count, err := s.store.Attendances().CountByParticipantAndStatus(ctx, participantID, domain.AttendancePresent)
	if err != nil {
		return entities.Eligibility{}, fmt.Errorf("count attendances: %w", err)
	}
	e := entities.Eligibility{
		ParticipantID: participantID,
		Count:         count,
		Required:      RequiredAttendances,
		Eligible:      count >= RequiredAttendances,
	}
	if e.Eligible {
		e.Folio = CertificateFolio(participant.Email)
	}
	return e, nil
}

// CertificateFolio derives the folio printed on a certificate.
func CertificateFolio(email string) string {
	return uuid.NewSHA1(certificateNamespace, []byte(strings.ToLower(strings.TrimSpace(email)))).String()
}
