package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"congreso/internal/ports/output"
)

var _ output.UnitOfWork = (*Store)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the PostgreSQL unit of work. Reads outside WithinTx use the pool
// directly; FOR UPDATE locks only mean something inside a transaction.
type Store struct {
	pool *pgxpool.Pool
	repos
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, repos: repos{q: pool}}
}

// WithinTx runs fn in a READ COMMITTED transaction. Row locks taken by the
// repositories serialize competing enrollments on the same rows. Lock and
// serialization failures come back as domain.ErrCapacityRace.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos output.Repositories) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			err = raceError(err)
		}
	}()

	if err = fn(ctx, &repos{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type repos struct {
	q querier
}

func (r *repos) Participants() output.ParticipantRepository { return &ParticipantRepository{q: r.q} }
func (r *repos) Activities() output.ActivityRepository      { return &ActivityRepository{q: r.q} }
func (r *repos) Enrollments() output.EnrollmentRepository   { return &EnrollmentRepository{q: r.q} }
func (r *repos) Attendances() output.AttendanceRepository   { return &AttendanceRepository{q: r.q} }
func (r *repos) Teams() output.TeamRepository               { return &TeamRepository{q: r.q} }
