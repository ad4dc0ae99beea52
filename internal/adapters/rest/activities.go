package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"congreso/internal/domain"
	"congreso/internal/ports/input"
	"congreso/pkg/tz"
)

// CreateActivity handles POST /activities
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	startsAt, err := tz.Parse(req.StartsAt, h.loc)
	if err != nil {
		h.writeError(w, r, domain.Invalid("starts_at", err.Error()))
		return
	}
	endsAt, err := tz.Parse(req.EndsAt, h.loc)
	if err != nil {
		h.writeError(w, r, domain.Invalid("ends_at", err.Error()))
		return
	}

	a, err := h.svc.Activities.CreateActivity(r.Context(), input.CreateActivity{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Location:    req.Location,
		Type:        req.Type,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityResponse(a, h.loc))
}

// ListActivities handles GET /activities?type=workshop
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Activities.ListActivities(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]activityResponse, 0, len(list))
	for i := range list {
		out = append(out, toActivityResponse(&list[i], h.loc))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetActivity handles GET /activities/{id}
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.Activities.GetActivity(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a, h.loc))
}

// SetActive handles PUT /activities/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req setActiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.svc.Activities.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(a, h.loc))
}

// Occupancy handles GET /activities/{id}/occupancy
func (h *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.Enrollments.Occupancy(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOccupancyResponse(o))
}

// WorkshopOccupancy handles GET /workshops/occupancy
func (h *Handler) WorkshopOccupancy(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Enrollments.WorkshopOccupancy(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]workshopOccupancyResponse, 0, len(list))
	for i := range list {
		out = append(out, workshopOccupancyResponse{
			Activity:  toActivityResponse(&list[i].Activity, h.loc),
			Occupancy: toOccupancyResponse(list[i].Occupancy),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Window handles GET /windows/{name}. The attendance window needs
// ?activity_id= to anchor it on the activity start.
func (h *Handler) Window(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var reference time.Time
	switch name {
	case domain.WindowRegistration, domain.WindowWorkshops, domain.WindowContest:
	case domain.WindowAttendance:
		id, err := queryID(r, "activity_id")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		a, err := h.svc.Activities.GetActivity(r.Context(), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		reference = a.StartsAt
	default:
		h.writeError(w, r, domain.Invalid("name", "unknown window"))
		return
	}

	resp := windowResponse{Name: name, Open: h.windows.IsWithinWindow(name, reference)}
	if win, ok := h.windows.Lookup(name, reference); ok {
		opens, closes := win.Start.In(h.loc), win.End.In(h.loc)
		resp.OpensAt, resp.ClosesAt = &opens, &closes
	}
	writeJSON(w, http.StatusOK, resp)
}
