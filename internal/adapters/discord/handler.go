package discord

import (
	"time"

	"go.uber.org/zap"

	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	enrollments   input.EnrollmentUseCase
	tr            output.T
	defaultLocale string
	loc           *time.Location
	logger        *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(enrollments input.EnrollmentUseCase, tr output.T, defaultLocale string, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		enrollments:   enrollments,
		tr:            tr,
		defaultLocale: defaultLocale,
		loc:           loc,
		logger:        logger,
	}
}
