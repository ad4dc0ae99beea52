package input

import (
	"context"

	"congreso/internal/domain/entities"
)

// RegisterParticipant is the registration form.
type RegisterParticipant struct {
	Email           string `validate:"required,max=254,mailbox"`
	FirstName       string `validate:"required,max=100"`
	PaternalSurname string `validate:"required,max=100"`
	MaternalSurname string `validate:"max=100"`
	Category        string `validate:"required,oneof=student speaker external"`
	Program         string `validate:"max=200"`
}

type ParticipantUseCase interface {
	Register(ctx context.Context, req RegisterParticipant) (*entities.Participant, error)
	GetParticipant(ctx context.Context, id uint) (*entities.Participant, error)
	AssignWristband(ctx context.Context, id uint, wristband string) (*entities.Participant, error)
}
