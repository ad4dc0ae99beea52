package input

import (
	"context"

	"congreso/internal/domain/entities"
)

// RegisterTeam holds the captain and the five member emails.
type RegisterTeam struct {
	Name         string   `validate:"required,max=100"`
	State        string   `validate:"required"`
	CaptainEmail string   `validate:"required,mailbox"`
	MemberEmails []string `validate:"len=5,unique,dive,required,mailbox"`
}

type TeamUseCase interface {
	RegisterTeam(ctx context.Context, req RegisterTeam) (*entities.Team, error)
	ListTeams(ctx context.Context) ([]entities.Team, error)
	ListStates(ctx context.Context) ([]entities.StateSlot, error)
}
