package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

type enrollmentRepo struct{ repos }

func byCreation(a, b entities.Enrollment) int {
	return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
}

// Create enforces one non-cancelled row per participant, like the partial
// unique index of the SQL schema.
func (r *enrollmentRepo) Create(ctx context.Context, e *entities.Enrollment) error {
	return r.do(ctx, func(st *state) error {
		for i := range st.enrollments {
			if st.enrollments[i].ParticipantID == e.ParticipantID && st.enrollments[i].IsActive() {
				return domain.ErrAlreadyEnrolled
			}
		}
		e.ID = uint(len(st.enrollments) + 1)
		st.enrollments = append(st.enrollments, *e)
		return nil
	})
}

func (r *enrollmentRepo) find(ctx context.Context, match func(e *entities.Enrollment) bool) (*entities.Enrollment, error) {
	var out *entities.Enrollment
	err := r.do(ctx, func(st *state) error {
		var candidates []entities.Enrollment
		for i := range st.enrollments {
			if match(&st.enrollments[i]) {
				candidates = append(candidates, st.enrollments[i])
			}
		}
		if len(candidates) == 0 {
			return domain.ErrEnrollmentNotFound
		}
		slices.SortFunc(candidates, byCreation)
		out = &candidates[0]
		return nil
	})
	return out, err
}

func (r *enrollmentRepo) FindActiveByParticipant(ctx context.Context, participantID uint) (*entities.Enrollment, error) {
	return r.find(ctx, func(e *entities.Enrollment) bool {
		return e.ParticipantID == participantID && e.IsActive()
	})
}

func (r *enrollmentRepo) FindActive(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error) {
	return r.find(ctx, func(e *entities.Enrollment) bool {
		return e.ParticipantID == participantID && e.ActivityID == activityID && e.IsActive()
	})
}

func (r *enrollmentRepo) NextWaitlisted(ctx context.Context, activityID uint) (*entities.Enrollment, error) {
	return r.find(ctx, func(e *entities.Enrollment) bool {
		return e.ActivityID == activityID && e.Status == domain.StatusWaitlisted
	})
}

// UpdateStatus stamps UpdatedAt with the wall clock, as the SQL store does with now().
func (r *enrollmentRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.do(ctx, func(st *state) error {
		if id == 0 || int(id) > len(st.enrollments) {
			return domain.ErrEnrollmentNotFound
		}
		st.enrollments[id-1].Status = status
		st.enrollments[id-1].UpdatedAt = time.Now()
		return nil
	})
}

func (r *enrollmentRepo) CountByActivityAndStatus(ctx context.Context, activityID uint, status string) (int, error) {
	n := 0
	err := r.do(ctx, func(st *state) error {
		for i := range st.enrollments {
			if st.enrollments[i].ActivityID == activityID && st.enrollments[i].Status == status {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *enrollmentRepo) FindByActivityAndStatus(ctx context.Context, activityID uint, status string) ([]entities.Enrollment, error) {
	var out []entities.Enrollment
	err := r.do(ctx, func(st *state) error {
		for i := range st.enrollments {
			if st.enrollments[i].ActivityID == activityID && st.enrollments[i].Status == status {
				out = append(out, st.enrollments[i])
			}
		}
		return nil
	})
	slices.SortFunc(out, byCreation)
	return out, err
}
