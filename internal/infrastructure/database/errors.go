package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"congreso/internal/domain"
)

// PostgreSQL SQLSTATE codes.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// uniqueConstraints maps schema constraint and index names to domain errors.
var uniqueConstraints = map[string]error{
	"participants_email_key":                 domain.ErrEmailTaken,
	"participants_wristband_key":             domain.ErrWristbandTaken,
	"enrollments_one_active_per_participant": domain.ErrAlreadyEnrolled,
	"attendances_participant_activity_key":   domain.ErrAttendanceRecorded,
	"teams_state_key":                        domain.ErrStateTaken,
	"team_members_participant_id_key":        domain.ErrAlreadyInTeam,
}

// uniqueError turns a known unique violation into its domain error and
// wraps anything else with op.
func uniqueError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		if mapped, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return mapped
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func raceError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%w: %s", domain.ErrCapacityRace, pgErr.Message)
	}
	return err
}
