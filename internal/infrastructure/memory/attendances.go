package memory

import (
	"context"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

type attendanceRepo struct{ repos }

func (r *attendanceRepo) Create(ctx context.Context, a *entities.Attendance) error {
	return r.do(ctx, func(st *state) error {
		for i := range st.attendances {
			if st.attendances[i].ParticipantID == a.ParticipantID && st.attendances[i].ActivityID == a.ActivityID {
				return domain.ErrAttendanceRecorded
			}
		}
		a.ID = uint(len(st.attendances) + 1)
		st.attendances = append(st.attendances, *a)
		return nil
	})
}

func (r *attendanceRepo) Exists(ctx context.Context, participantID, activityID uint) (bool, error) {
	found := false
	err := r.do(ctx, func(st *state) error {
		for i := range st.attendances {
			if st.attendances[i].ParticipantID == participantID && st.attendances[i].ActivityID == activityID {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *attendanceRepo) CountByParticipantAndStatus(ctx context.Context, participantID uint, status string) (int, error) {
	n := 0
	err := r.do(ctx, func(st *state) error {
		for i := range st.attendances {
			if st.attendances[i].ParticipantID == participantID && st.attendances[i].Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}
