package database

import (
	"context"
	"fmt"

	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

var _ output.AttendanceRepository = (*AttendanceRepository)(nil)

type AttendanceRepository struct {
	q querier
}

func (r *AttendanceRepository) Create(ctx context.Context, a *entities.Attendance) error {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO attendances (participant_id, activity_id, status, recorded_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		int64(a.ParticipantID), int64(a.ActivityID), a.Status, a.RecordedAt,
	).Scan(&id)
	if err != nil {
		return uniqueError("create attendance", err)
	}
	a.ID = uint(id)
	return nil
}

func (r *AttendanceRepository) Exists(ctx context.Context, participantID, activityID uint) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE participant_id = $1 AND activity_id = $2)`,
		int64(participantID), int64(activityID),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}

func (r *AttendanceRepository) CountByParticipantAndStatus(ctx context.Context, participantID uint, status string) (int, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE participant_id = $1 AND status = $2`,
		int64(participantID), status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count attendances: %w", err)
	}
	return int(n), nil
}
