package input

import (
	"context"

	"congreso/internal/domain/entities"
)

type AttendanceUseCase interface {
	Record(ctx context.Context, participantID, activityID uint) (*entities.Attendance, error)
	Eligibility(ctx context.Context, participantID uint) (entities.Eligibility, error)
}
