package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	q querier
}

const participantColumns = `id, email, first_name, paternal_surname, maternal_surname,
	category, program, wristband, created_at, updated_at`

func scanParticipant(row pgx.Row) (*entities.Participant, error) {
	var (
		p         entities.Participant
		id        int64
		wristband pgtype.Text
	)
	err := row.Scan(&id, &p.Email, &p.FirstName, &p.PaternalSurname, &p.MaternalSurname,
		&p.Category, &p.Program, &wristband, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	p.ID = uint(id)
	p.Wristband = textOrEmpty(wristband)
	return &p, nil
}

func (r *ParticipantRepository) Create(ctx context.Context, p *entities.Participant) error {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO participants (email, first_name, paternal_surname, maternal_surname,
		                           category, program, wristband, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		 RETURNING id`,
		p.Email, p.FirstName, p.PaternalSurname, p.MaternalSurname,
		p.Category, p.Program, p.Wristband, p.CreatedAt, p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return uniqueError("create participant", err)
	}
	p.ID = uint(id)
	return nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (*entities.Participant, error) {
	p, err := scanParticipant(r.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1`, int64(id)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get participant by id: %w", err)
	}
	return p, err
}

func (r *ParticipantRepository) LockByID(ctx context.Context, id uint) (*entities.Participant, error) {
	p, err := scanParticipant(r.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1 FOR UPDATE`, int64(id)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lock participant: %w", err)
	}
	return p, err
}

func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) (*entities.Participant, error) {
	p, err := scanParticipant(r.q.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE email = $1`, email))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get participant by email: %w", err)
	}
	return p, err
}

func (r *ParticipantRepository) AssignWristband(ctx context.Context, id uint, wristband string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE participants SET wristband = $2, updated_at = now() WHERE id = $1`,
		int64(id), wristband)
	if err != nil {
		return uniqueError("assign wristband", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}
