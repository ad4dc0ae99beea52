package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
	"congreso/pkg/validate"
)

var _ input.ParticipantUseCase = (*ParticipantService)(nil)

type ParticipantService struct {
	store   output.UnitOfWork
	windows *domain.Windows
	logger  *zap.Logger
	metrics output.Metrics
}

func NewParticipantService(deps Deps) *ParticipantService {
	deps = deps.withDefaults()
	return &ParticipantService{
		store:   deps.Store,
		windows: deps.Windows,
		logger:  deps.Logger.Named("participant"),
		metrics: deps.Metrics,
	}
}

// Register creates a participant while the registration window is open.
func (s *ParticipantService) Register(ctx context.Context, req input.RegisterParticipant) (*entities.Participant, error) {
	if err := s.windows.Require(domain.WindowRegistration, time.Time{}); err != nil {
		reject(s.logger, s.metrics, "register", err)
		return nil, err
	}
	p, err := newParticipant(req, s.windows.Now())
	if err != nil {
		reject(s.logger, s.metrics, "register", err)
		return nil, err
	}
	if err := s.store.Participants().Create(ctx, p); err != nil {
		reject(s.logger, s.metrics, "register", err, zap.String("email", p.Email))
		return nil, err
	}
	s.logger.Info("participant registered", zap.Uint("participant_id", p.ID), zap.String("category", p.Category))
	return p, nil
}

func newParticipant(req input.RegisterParticipant, now time.Time) (*entities.Participant, error) {
	req = input.RegisterParticipant{
		Email:           normalizeEmail(req.Email),
		FirstName:       domain.NormalizeName(req.FirstName),
		PaternalSurname: domain.NormalizeName(req.PaternalSurname),
		MaternalSurname: domain.NormalizeName(req.MaternalSurname),
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		Program:         strings.TrimSpace(req.Program),
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return &entities.Participant{
		Email:           req.Email,
		FirstName:       req.FirstName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Category:        req.Category,
		Program:         req.Program,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (s *ParticipantService) GetParticipant(ctx context.Context, id uint) (*entities.Participant, error) {
	return s.store.Participants().FindByID(ctx, id)
}

// AssignWristband sets the participant's wristband number, unique across participants.
func (s *ParticipantService) AssignWristband(ctx context.Context, id uint, wristband string) (*entities.Participant, error) {
	wristband = strings.TrimSpace(wristband)
	if err := validate.Var("wristband", wristband, "required,max=32"); err != nil {
		reject(s.logger, s.metrics, "assign wristband", err)
		return nil, err
	}

	var updated *entities.Participant
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
		if _, err := repos.Participants().LockByID(ctx, id); err != nil {
			return err
		}
		if err := repos.Participants().AssignWristband(ctx, id, wristband); err != nil {
			return err
		}
		p, err := repos.Participants().FindByID(ctx, id)
		updated = p
		return err
	})
	if err != nil {
		reject(s.logger, s.metrics, "assign wristband", err, zap.Uint("participant_id", id))
		return nil, err
	}
	s.logger.Info("wristband assigned", zap.Uint("participant_id", id))
	return updated, nil
}
