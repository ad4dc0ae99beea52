package memory

import (
	"context"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
)

type participantRepo struct{ repos }

func (r *participantRepo) Create(ctx context.Context, p *entities.Participant) error {
	return r.do(ctx, func(st *state) error {
		for i := range st.participants {
			if st.participants[i].Email == p.Email {
				return domain.ErrEmailTaken
			}
			if p.Wristband != "" && st.participants[i].Wristband == p.Wristband {
				return domain.ErrWristbandTaken
			}
		}
		p.ID = uint(len(st.participants) + 1)
		st.participants = append(st.participants, *p)
		return nil
	})
}

func (r *participantRepo) FindByID(ctx context.Context, id uint) (*entities.Participant, error) {
	var out *entities.Participant
	err := r.do(ctx, func(st *state) error {
		if id == 0 || int(id) > len(st.participants) {
			return domain.ErrParticipantNotFound
		}
		p := st.participants[id-1]
		out = &p
		return nil
	})
	return out, err
}

func (r *participantRepo) LockByID(ctx context.Context, id uint) (*entities.Participant, error) {
	return r.FindByID(ctx, id)
}

func (r *participantRepo) FindByEmail(ctx context.Context, email string) (*entities.Participant, error) {
	var out *entities.Participant
	err := r.do(ctx, func(st *state) error {
		for i := range st.participants {
			if st.participants[i].Email == email {
				p := st.participants[i]
				out = &p
				return nil
			}
		}
		return domain.ErrParticipantNotFound
	})
	return out, err
}

func (r *participantRepo) AssignWristband(ctx context.Context, id uint, wristband string) error {
	return r.do(ctx, func(st *state) error {
		if id == 0 || int(id) > len(st.participants) {
			return domain.ErrParticipantNotFound
		}
		for i := range st.participants {
			if st.participants[i].ID != id && st.participants[i].Wristband == wristband {
				return domain.ErrWristbandTaken
			}
		}
		st.participants[id-1].Wristband = wristband
		return nil
	})
}
