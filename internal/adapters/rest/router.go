package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions configures the ambient parts of the router.
type RouterOptions struct {
	Recorder       RequestRecorder
	MetricsHandler http.Handler // served at /metrics when set
	RequestTimeout time.Duration
}

// NewRouter mounts every route of the API.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(h.logger, opts.Recorder))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", Health)
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Route("/participants", func(r chi.Router) {
		r.Post("/", h.RegisterParticipant)
		r.Get("/{id}", h.GetParticipant)
		r.Put("/{id}/wristband", h.AssignWristband)
		r.Get("/{id}/certificate", h.Certificate)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Post("/", h.CreateActivity)
		r.Get("/", h.ListActivities)
		r.Get("/{id}", h.GetActivity)
		r.Put("/{id}/active", h.SetActive)
		r.Get("/{id}/occupancy", h.Occupancy)
		r.Get("/{id}/waitlist", h.Waitlist)
		r.Post("/{id}/enrollments", h.Enroll)
		r.Get("/{id}/enrollments/{participantID}", h.EnrollmentStatus)
		r.Delete("/{id}/enrollments/{participantID}", h.Cancel)
		r.Post("/{id}/attendance", h.RecordAttendance)
	})

	r.Get("/workshops/occupancy", h.WorkshopOccupancy)

	r.Route("/teams", func(r chi.Router) {
		r.Post("/", h.RegisterTeam)
		r.Get("/", h.ListTeams)
	})
	r.Get("/contest/states", h.ListStates)

	r.Get("/windows/{name}", h.Window)

	return r
}
