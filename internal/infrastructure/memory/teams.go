package memory

import (
	"context"
	"slices"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

type teamRepo struct{ repos }

func (r *teamRepo) Create(ctx context.Context, t *entities.Team) error {
	return r.do(ctx, func(st *state) error {
		for i := range st.teams {
			if st.teams[i].State == t.State {
				return domain.ErrStateTaken
			}
			for _, id := range t.MemberIDs {
				if slices.Contains(st.teams[i].MemberIDs, id) {
					return domain.ErrAlreadyInTeam
				}
			}
		}
		t.ID = uint(len(st.teams) + 1)
		stored := *t
		stored.MemberIDs = slices.Clone(t.MemberIDs)
		st.teams = append(st.teams, stored)
		return nil
	})
}

func (r *teamRepo) FindTeamIDByMember(ctx context.Context, participantID uint) (uint, bool, error) {
	var id uint
	err := r.do(ctx, func(st *state) error {
		for i := range st.teams {
			if slices.Contains(st.teams[i].MemberIDs, participantID) {
				id = st.teams[i].ID
				return nil
			}
		}
		return nil
	})
	return id, id != 0, err
}

func (r *teamRepo) FindByState(ctx context.Context, name string) (*entities.Team, bool, error) {
	var out *entities.Team
	err := r.do(ctx, func(st *state) error {
		for i := range st.teams {
			if st.teams[i].State == name {
				t := st.teams[i]
				t.MemberIDs = slices.Clone(t.MemberIDs)
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, out != nil, err
}

func (r *teamRepo) List(ctx context.Context) ([]entities.Team, error) {
	var out []entities.Team
	err := r.do(ctx, func(st *state) error {
		for _, t := range st.teams {
			t.MemberIDs = slices.Clone(t.MemberIDs)
			out = append(out, t)
		}
		return nil
	})
	return out, err
}
