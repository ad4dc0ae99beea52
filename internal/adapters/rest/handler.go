// Package rest exposes the congress use cases over a chi JSON API.
package rest

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"congreso/internal/domain"
	"congreso/internal/ports/input"
	"congreso/internal/ports/output"
)

// Services groups the use cases served by the API.
type Services struct {
	Participants input.ParticipantUseCase
	Activities   input.ActivityUseCase
	Enrollments  input.EnrollmentUseCase
	Attendance   input.AttendanceUseCase
	Teams        input.TeamUseCase
}

// Handler holds all HTTP handlers for the congress API.
type Handler struct {
	svc     Services
	windows *domain.Windows
	tr      output.T
	loc     *time.Location
	logger  *zap.Logger
}

// NewHandler constructs a Handler. loc is used to parse and render times.
func NewHandler(svc Services, windows *domain.Windows, tr output.T, loc *time.Location, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, windows: windows, tr: tr, loc: loc, logger: logger}
}

// Health handles GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
