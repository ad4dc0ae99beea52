package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

var _ output.TeamRepository = (*TeamRepository)(nil)

type TeamRepository struct {
	q querier
}

// Create inserts the team and its members. Run it inside a unit of work so a
// member conflict rolls back the team row too.
func (r *TeamRepository) Create(ctx context.Context, t *entities.Team) error {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO teams (name, state, captain_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		t.Name, t.State, int64(t.CaptainID), t.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uniqueError("create team", err)
	}
	for pos, memberID := range t.MemberIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO team_members (team_id, participant_id, position) VALUES ($1, $2, $3)`,
			id, int64(memberID), int16(pos))
		if err != nil {
			return uniqueError("add team member", err)
		}
	}
	t.ID = uint(id)
	return nil
}

func (r *TeamRepository) FindTeamIDByMember(ctx context.Context, participantID uint) (uint, bool, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`SELECT team_id FROM team_members WHERE participant_id = $1`, int64(participantID),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find team by member: %w", err)
	}
	return uint(id), true, nil
}

func (r *TeamRepository) FindByState(ctx context.Context, state string) (*entities.Team, bool, error) {
	teams, err := r.list(ctx, `WHERE t.state = $1`, state)
	if err != nil {
		return nil, false, err
	}
	if len(teams) == 0 {
		return nil, false, nil
	}
	return &teams[0], true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]entities.Team, error) {
	return r.list(ctx, "")
}

func (r *TeamRepository) list(ctx context.Context, where string, args ...any) ([]entities.Team, error) {
	rows, err := r.q.Query(ctx,
		`SELECT t.id, t.name, t.state, t.captain_id, t.created_at,
		        COALESCE(array_agg(m.participant_id ORDER BY m.position)
		                 FILTER (WHERE m.participant_id IS NOT NULL), '{}')
		 FROM teams t
		 LEFT JOIN team_members m ON m.team_id = t.id `+where+`
		 GROUP BY t.id
		 ORDER BY t.created_at, t.id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []entities.Team
	for rows.Next() {
		var (
			t             entities.Team
			id, captainID int64
			members       []int64
		)
		if err := rows.Scan(&id, &t.Name, &t.State, &captainID, &t.CreatedAt, &members); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		t.ID = uint(id)
		t.CaptainID = uint(captainID)
		t.MemberIDs = make([]uint, len(members))
		for i, m := range members {
			t.MemberIDs[i] = uint(m)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
