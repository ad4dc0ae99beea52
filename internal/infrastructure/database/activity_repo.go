package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

var _ output.ActivityRepository = (*ActivityRepository)(nil)

type ActivityRepository struct {
	q querier
}

const activityColumns = `id, title, description, starts_at, ends_at, location, type,
	max_capacity, active, created_at, updated_at`

func scanActivity(row pgx.Row) (*entities.Activity, error) {
	var (
		a        entities.Activity
		id       int64
		capacity int32
	)
	err := row.Scan(&id, &a.Title, &a.Description, &a.StartsAt, &a.EndsAt, &a.Location, &a.Type,
		&capacity, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	a.ID = uint(id)
	a.MaxCapacity = int(capacity)
	return &a, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *entities.Activity) error {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO activities (title, description, starts_at, ends_at, location, type,
		                         max_capacity, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		a.Title, a.Description, a.StartsAt, a.EndsAt, a.Location, a.Type,
		int32(a.MaxCapacity), a.Active, a.CreatedAt, a.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	a.ID = uint(id)
	return nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (*entities.Activity, error) {
	a, err := scanActivity(r.q.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, int64(id)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get activity by id: %w", err)
	}
	return a, err
}

// LockByID takes the row lock that serializes seat changes on one activity.
func (r *ActivityRepository) LockByID(ctx context.Context, id uint) (*entities.Activity, error) {
	a, err := scanActivity(r.q.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1 FOR UPDATE`, int64(id)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lock activity: %w", err)
	}
	return a, err
}

func (r *ActivityRepository) List(ctx context.Context, activityType string) ([]entities.Activity, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE $1 = '' OR type = $1
		 ORDER BY starts_at, id`,
		activityType,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var out []entities.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *ActivityRepository) SetActive(ctx context.Context, id uint, active bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE activities SET active = $2, updated_at = now() WHERE id = $1`, int64(id), active)
	if err != nil {
		return fmt.Errorf("set activity active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}
