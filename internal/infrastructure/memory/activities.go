package memory

import (
	"cmp"
	"context"
	"slices"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

type activityRepo struct{ repos }

func (r *activityRepo) Create(ctx context.Context, a *entities.Activity) error {
	return r.do(ctx, func(st *state) error {
		a.ID = uint(len(st.activities) + 1)
		st.activities = append(st.activities, *a)
		return nil
	})
}

func (r *activityRepo) FindByID(ctx context.Context, id uint) (*entities.Activity, error) {
	var out *entities.Activity
	err := r.do(ctx, func(st *state) error {
		if id == 0 || int(id) > len(st.activities) {
			return domain.ErrActivityNotFound
		}
		a := st.activities[id-1]
		out = &a
		return nil
	})
	return out, err
}

func (r *activityRepo) LockByID(ctx context.Context, id uint) (*entities.Activity, error) {
	return r.FindByID(ctx, id)
}

func (r *activityRepo) List(ctx context.Context, activityType string) ([]entities.Activity, error) {
	var out []entities.Activity
	err := r.do(ctx, func(st *state) error {
		for _, a := range st.activities {
			if activityType == "" || a.Type == activityType {
				out = append(out, a)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b entities.Activity) int {
		return cmp.Or(a.StartsAt.Compare(b.StartsAt), cmp.Compare(a.ID, b.ID))
	})
	return out, err
}

func (r *activityRepo) SetActive(ctx context.Context, id uint, active bool) error {
	return r.do(ctx, func(st *state) error {
		if id == 0 || int(id) > len(st.activities) {
			return domain.ErrActivityNotFound
		}
		st.activities[id-1].Active = active
		return nil
	})
}
