package application

import (
	"context"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/domain/entities"
	"congreso/internal/ports/output"
)

// Deps is what every service needs. Nil Metrics, Notifier or Logger are
// replaced with no-ops.
type Deps struct {
	Store    output.UnitOfWork
	Windows  *domain.Windows
	Logger   *zap.Logger
	Metrics  output.Metrics
	Notifier output.Notifier
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	return d
}

type nopMetrics struct{}

func (nopMetrics) EnrollmentResolved(string) {}
func (nopMetrics) WaitlistPromoted()         {}
func (nopMetrics) AttendanceRecorded()       {}
func (nopMetrics) Rejected(string, string)   {}

type nopNotifier struct{}

func (nopNotifier) WaitlistPromoted(context.Context, *entities.Activity, *entities.Participant) error {
	return nil
}

// reject logs a business-rule rejection and counts it. Errors without a
// domain code are storage failures and are logged at error level.
func reject(logger *zap.Logger, m output.Metrics, operation string, err error, fields ...zap.Field) {
	code := domain.Code(err)
	if code == "" {
		logger.Error(operation+" failed", append(fields, zap.Error(err))...)
		return
	}
	m.Rejected(operation, code)
	logger.Info(operation+" rejected", append(fields, zap.String("code", code))...)
}
