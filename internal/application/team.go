package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
	"congreso/pkg/validate"
)

var _ input.TeamUseCase = (*TeamService)(nil)

type TeamService struct {
	store   output.UnitOfWork
	windows *domain.Windows
	logger  *zap.Logger
	metrics output.Metrics
}

func NewTeamService(deps Deps) *TeamService {
	deps = deps.withDefaults()
	return &TeamService{
		store:   deps.Store,
		windows: deps.Windows,
		logger:  deps.Logger.Named("team"),
		metrics: deps.Metrics,
	}
}

// RegisterTeam claims a contest state for a captain and five members. Every
// email must belong to a registered participant who is not in another team.
// States are first come, first served.
func (s *TeamService) RegisterTeam(ctx context.Context, req input.RegisterTeam) (*entities.Team, error) {
	if err := s.windows.Require(domain.WindowContest, time.Time{}); err != nil {
		reject(s.logger, s.metrics, "register team", err)
		return nil, err
	}
	req, err := validateTeam(req)
	if err != nil {
		reject(s.logger, s.metrics, "register team", err)
		return nil, err
	}
	state := req.State
	emails := append([]string{req.CaptainEmail}, req.MemberEmails...)

	team := &entities.Team{Name: req.Name, State: state, CreatedAt: s.windows.Now()}
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos output.Repositories) error {
		if _, taken, err := repos.Teams().FindByState(ctx, state); err != nil {
			return err
		} else if taken {
			return domain.ErrStateTaken
		}

		team.MemberIDs = make([]uint, 0, len(emails))
		for _, email := range emails {
			p, err := repos.Participants().FindByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, domain.ErrParticipantNotFound) {
					return fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, email)
				}
				return err
			}
			if _, inTeam, err := repos.Teams().FindTeamIDByMember(ctx, p.ID); err != nil {
				return err
			} else if inTeam {
				return fmt.Errorf("%w: %s", domain.ErrAlreadyInTeam, email)
			}
			team.MemberIDs = append(team.MemberIDs, p.ID)
		}
		team.CaptainID = team.MemberIDs[0]
		return repos.Teams().Create(ctx, team)
	})
	if err != nil {
		reject(s.logger, s.metrics, "register team", err, zap.String("state", state))
		return nil, err
	}

	s.logger.Info("team registered", zap.Uint("team_id", team.ID), zap.String("state", state))
	return team, nil
}

// validateTeam normalizes the emails and state before checking them.
func validateTeam(req input.RegisterTeam) (input.RegisterTeam, error) {
	norm := input.RegisterTeam{
		Name:         strings.TrimSpace(req.Name),
		State:        strings.TrimSpace(req.State),
		CaptainEmail: normalizeEmail(req.CaptainEmail),
		MemberEmails: make([]string, len(req.MemberEmails)),
	}
	for i, email := range req.MemberEmails {
		norm.MemberEmails[i] = normalizeEmail(email)
	}
	if err := validate.Struct(norm); err != nil {
		return norm, err
	}
	if slices.Contains(norm.MemberEmails, norm.CaptainEmail) {
		return norm, domain.Invalid("member_emails", "the captain is not listed as a member")
	}
	state, ok := domain.CanonicalState(norm.State)
	if !ok {
		return norm, domain.Invalid("state", "unknown state")
	}
	norm.State = state
	return norm, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]entities.Team, error) {
	return s.store.Teams().List(ctx)
}

// ListStates returns every contest state with its team, if any.
func (s *TeamService) ListStates(ctx context.Context) ([]entities.StateSlot, error) {
	teams, err := s.store.Teams().List(ctx)
	if err != nil {
		return nil, err
	}
	byState := make(map[string]uint, len(teams))
	for _, t := range teams {
		byState[t.State] = t.ID
	}
	slots := make([]entities.StateSlot, len(domain.ContestStates))
	for i, st := range domain.ContestStates {
		id, taken := byState[st]
		slots[i] = entities.StateSlot{State: st, Taken: taken, TeamID: id}
	}
	return slots, nil
}
