package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/input"
)

func teamRequest(state string, people []*entities.Participant) input.RegisterTeam {
	members := make([]string, 0, len(people)-1)
	for _, p := range people[1:] {
		members = append(members, p.Email)
	}
	return input.RegisterTeam{
		Name:         "Equipo " + state,
		State:        state,
		CaptainEmail: people[0].Email,
		MemberEmails: members,
	}
}

func TestRegisterTeam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	people := f.participantsN(t, entities.TeamSize)

	team, err := f.teams.RegisterTeam(ctx, teamRequest("  nuevo león ", people))
	require.NoError(t, err)
	assert.Equal(t, "Nuevo León", team.State)
	assert.Equal(t, people[0].ID, team.CaptainID)
	require.Len(t, team.MemberIDs, entities.TeamSize)
	assert.Equal(t, people[0].ID, team.MemberIDs[0])

	slots, err := f.teams.ListStates(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 32)
	taken := 0
	for _, s := range slots {
		if s.Taken {
			taken++
			assert.Equal(t, "Nuevo León", s.State)
			assert.Equal(t, team.ID, s.TeamID)
		}
	}
	assert.Equal(t, 1, taken)

	teams, err := f.teams.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestRegisterTeam_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	people := f.participantsN(t, 3*entities.TeamSize)
	first := people[:entities.TeamSize]
	second := people[entities.TeamSize : 2*entities.TeamSize]

	_, err := f.teams.RegisterTeam(ctx, teamRequest("Jalisco", first))
	require.NoError(t, err)

	_, err = f.teams.RegisterTeam(ctx, teamRequest("JALISCO", second))
	assert.ErrorIs(t, err, domain.ErrStateTaken)

	mixed := append([]*entities.Participant{}, second[:entities.TeamSize-1]...)
	mixed = append(mixed, first[3])
	_, err = f.teams.RegisterTeam(ctx, teamRequest("Colima", mixed))
	assert.ErrorIs(t, err, domain.ErrAlreadyInTeam)
	assert.Contains(t, err.Error(), first[3].Email)

	req := teamRequest("Sonora", second)
	req.MemberEmails[2] = "nadie@example.com"
	_, err = f.teams.RegisterTeam(ctx, req)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)

	// Failed attempts leave nothing behind.
	_, err = f.teams.RegisterTeam(ctx, teamRequest("Sonora", second))
	require.NoError(t, err)
}

func TestRegisterTeam_Validation(t *testing.T) {
	f := newFixture(t)
	people := f.participantsN(t, entities.TeamSize+1)

	tests := []struct {
		name  string
		edit  func(r *input.RegisterTeam)
		field string
	}{
		{"missing name", func(r *input.RegisterTeam) { r.Name = " " }, "name"},
		{"unknown state", func(r *input.RegisterTeam) { r.State = "Texas" }, "state"},
		{"too few members", func(r *input.RegisterTeam) { r.MemberEmails = r.MemberEmails[:4] }, "member_emails"},
		{"too many members", func(r *input.RegisterTeam) { r.MemberEmails = append(r.MemberEmails, people[6].Email) }, "member_emails"},
		{"captain repeated as member", func(r *input.RegisterTeam) { r.MemberEmails[0] = r.CaptainEmail }, "member_emails"},
		{"repeated member ignoring case", func(r *input.RegisterTeam) {
			r.MemberEmails[1] = fmt.Sprintf(" %s ", r.MemberEmails[2])
		}, "member_emails"},
		{"bad member email", func(r *input.RegisterTeam) { r.MemberEmails[3] = "nope" }, "member_emails[3]"},
		{"bad captain email", func(r *input.RegisterTeam) { r.CaptainEmail = "capitan@localhost" }, "captain_email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := teamRequest("Yucatán", people[:entities.TeamSize])
			tt.edit(&req)
			_, err := f.teams.RegisterTeam(context.Background(), req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegisterTeam_ContestWindow(t *testing.T) {
	f := newFixture(t)
	people := f.participantsN(t, entities.TeamSize)
	f.clock.Set(openWindows()[domain.WindowContest].End.Add(1))

	_, err := f.teams.RegisterTeam(context.Background(), teamRequest("Puebla", people))
	assert.ErrorIs(t, err, domain.ErrOutOfWindow)
}
