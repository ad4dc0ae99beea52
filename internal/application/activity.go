package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
	"congreso/pkg/validate"
)

// activityTypeTag matches the oneof on input.CreateActivity.Type.
const activityTypeTag = "oneof=workshop conference forum"

var _ input.ActivityUseCase = (*ActivityService)(nil)

type ActivityService struct {
	store   output.UnitOfWork
	windows *domain.Windows
	logger  *zap.Logger
	metrics output.Metrics
}

func NewActivityService(deps Deps) *ActivityService {
	deps = deps.withDefaults()
	return &ActivityService{
		store:   deps.Store,
		windows: deps.Windows,
		logger:  deps.Logger.Named("activity"),
		metrics: deps.Metrics,
	}
}

func (s *ActivityService) CreateActivity(ctx context.Context, req input.CreateActivity) (*entities.Activity, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if err := validate.Struct(req); err != nil {
		reject(s.logger, s.metrics, "create activity", err)
		return nil, err
	}

	now := s.windows.Now()
	a := &entities.Activity{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
		Type:        req.Type,
		MaxCapacity: req.MaxCapacity,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Activities().Create(ctx, a); err != nil {
		reject(s.logger, s.metrics, "create activity", err)
		return nil, err
	}
	s.logger.Info("activity created", zap.Uint("activity_id", a.ID), zap.String("type", a.Type))
	return a, nil
}

func (s *ActivityService) GetActivity(ctx context.Context, id uint) (*entities.Activity, error) {
	return s.store.Activities().FindByID(ctx, id)
}

func (s *ActivityService) ListActivities(ctx context.Context, activityType string) ([]entities.Activity, error) {
	activityType = strings.ToLower(strings.TrimSpace(activityType))
	if err := validate.Var("type", activityType, "omitempty,"+activityTypeTag); err != nil {
		return nil, err
	}
	return s.store.Activities().List(ctx, activityType)
}

// SetActive toggles whether the activity takes enrollments and attendance.
func (s *ActivityService) SetActive(ctx context.Context, id uint, active bool) (*entities.Activity, error) {
	var updated *entities.Activity
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
		if _, err := repos.Activities().LockByID(ctx, id); err != nil {
			return err
		}
		if err := repos.Activities().SetActive(ctx, id, active); err != nil {
			return err
		}
		a, err := repos.Activities().FindByID(ctx, id)
		updated = a
		return err
	})
	if err != nil {
		reject(s.logger, s.metrics, "set activity active", err, zap.Uint("activity_id", id))
		return nil, err
	}
	return updated, nil
}
