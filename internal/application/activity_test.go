package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"congreso/internal/domain"
	"congreso/internal/ports/input"
)

func TestCreateActivity_Validation(t *testing.T) {
	valid := input.CreateActivity{
		Title:       "Taller de Go",
		StartsAt:    testNow,
		EndsAt:      testNow.Add(time.Hour),
		Type:        domain.ActivityWorkshop,
		MaxCapacity: 30,
	}

	tests := []struct {
		name  string
		edit  func(r *input.CreateActivity)
		field string
	}{
		{"missing title", func(r *input.CreateActivity) { r.Title = "" }, "title"},
		{"unknown type", func(r *input.CreateActivity) { r.Type = "party" }, "type"},
		{"missing start", func(r *input.CreateActivity) { r.StartsAt = time.Time{} }, "starts_at"},
		{"ends before start", func(r *input.CreateActivity) { r.EndsAt = r.StartsAt }, "ends_at"},
		{"negative capacity", func(r *input.CreateActivity) { r.MaxCapacity = -1 }, "max_capacity"},
		{"workshop without seats", func(r *input.CreateActivity) { r.MaxCapacity = 0 }, "max_capacity"},
	}

	f := newFixture(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.edit(&req)
			_, err := f.activities.CreateActivity(context.Background(), req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestListActivities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ws := f.workshop(t, 10)
	conf := f.activity(t, domain.ActivityConference, 0)

	all, err := f.activities.ListActivities(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	workshops, err := f.activities.ListActivities(ctx, " Workshop ")
	require.NoError(t, err)
	require.Len(t, workshops, 1)
	assert.Equal(t, ws.ID, workshops[0].ID)

	got, err := f.activities.GetActivity(ctx, conf.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityConference, got.Type)

	_, err = f.activities.ListActivities(ctx, "party")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.activities.GetActivity(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ws := f.workshop(t, 10)
	assert.True(t, ws.Active)

	a, err := f.activities.SetActive(ctx, ws.ID, false)
	require.NoError(t, err)
	assert.False(t, a.Active)

	a, err = f.activities.SetActive(ctx, ws.ID, true)
	require.NoError(t, err)
	assert.True(t, a.Active)

	_, err = f.activities.SetActive(ctx, 404, true)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}
