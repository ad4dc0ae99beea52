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

var _ output.EnrollmentRepository = (*EnrollmentRepository)(nil)

type EnrollmentRepository struct {
	q querier
}

const enrollmentColumns = `id, participant_id, activity_id, status, created_at, updated_at`

func scanEnrollment(row pgx.Row) (*entities.Enrollment, error) {
	var (
		e                             entities.Enrollment
		id, participantID, activityID int64
	)
	err := row.Scan(&id, &participantID, &activityID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, err
	}
	e.ID = uint(id)
	e.ParticipantID = uint(participantID)
	e.ActivityID = uint(activityID)
	return &e, nil
}

func (r *EnrollmentRepository) one(ctx context.Context, op, sql string, args ...any) (*entities.Enrollment, error) {
	e, err := scanEnrollment(r.q.QueryRow(ctx, sql, args...))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, err
}

// Create relies on enrollments_one_active_per_participant to reject a second
// active row even if two transactions slip past the service check.
func (r *EnrollmentRepository) Create(ctx context.Context, e *entities.Enrollment) error {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO enrollments (participant_id, activity_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		int64(e.ParticipantID), int64(e.ActivityID), e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return uniqueError("create enrollment", err)
	}
	e.ID = uint(id)
	return nil
}

func (r *EnrollmentRepository) FindActiveByParticipant(ctx context.Context, participantID uint) (*entities.Enrollment, error) {
	return r.one(ctx, "find active enrollment",
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE participant_id = $1 AND status <> 'cancelled'`,
		int64(participantID))
}

func (r *EnrollmentRepository) FindActive(ctx context.Context, participantID, activityID uint) (*entities.Enrollment, error) {
	return r.one(ctx, "find enrollment",
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE participant_id = $1 AND activity_id = $2 AND status <> 'cancelled'
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		int64(participantID), int64(activityID))
}

// NextWaitlisted returns the head of the waitlist, locked for promotion.
func (r *EnrollmentRepository) NextWaitlisted(ctx context.Context, activityID uint) (*entities.Enrollment, error) {
	return r.one(ctx, "next waitlisted",
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE activity_id = $1 AND status = 'waitlisted'
		 ORDER BY created_at, id
		 LIMIT 1
		 FOR UPDATE`,
		int64(activityID))
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE enrollments SET status = $2, updated_at = now() WHERE id = $1`, int64(id), status)
	if err != nil {
		return uniqueError("update enrollment status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) CountByActivityAndStatus(ctx context.Context, activityID uint, status string) (int, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE activity_id = $1 AND status = $2`,
		int64(activityID), status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return int(n), nil
}

func (r *EnrollmentRepository) FindByActivityAndStatus(ctx context.Context, activityID uint, status string) ([]entities.Enrollment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE activity_id = $1 AND status = $2
		 ORDER BY created_at, id`,
		int64(activityID), status,
	)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var out []entities.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
