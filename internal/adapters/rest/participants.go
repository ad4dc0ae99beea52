package rest

import (
	"net/http"

	"congreso/internal/ports/input"
)

// RegisterParticipant handles POST /participants
func (h *Handler) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req registerParticipantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Participants.Register(r.Context(), input.RegisterParticipant{
		Email:           req.Email,
		FirstName:       req.FirstName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Category:        req.Category,
		Program:         req.Program,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantResponse(p))
}

// GetParticipant handles GET /participants/{id}
func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Participants.GetParticipant(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toParticipantResponse(p))
}

// AssignWristband handles PUT /participants/{id}/wristband
func (h *Handler) AssignWristband(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req wristbandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Participants.AssignWristband(r.Context(), id, req.Wristband)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toParticipantResponse(p))
}

// Certificate handles GET /participants/{id}/certificate
func (h *Handler) Certificate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.svc.Attendance.Eligibility(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	key := "certificate.not_eligible"
	if e.Eligible {
		key = "certificate.eligible"
	}
	writeJSON(w, http.StatusOK, certificateResponse{
		ParticipantID: e.ParticipantID,
		Eligible:      e.Eligible,
		Attendances:   e.Count,
		Required:      e.Required,
		Folio:         e.Folio,
		Message:       h.message(r, key, map[string]any{"Count": e.Count, "Required": e.Required}),
	})
}
