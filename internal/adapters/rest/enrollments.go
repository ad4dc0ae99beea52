package rest

import (
	"net/http"

	"congreso/internal/domain"
)

// Enroll handles POST /activities/{id}/enrollments
// The response status is 201 for a seat and 202 for a waitlist position.
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	activityID, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req participantRef
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.svc.Enrollments.Enroll(r.Context(), req.ParticipantID, activityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status, key := http.StatusCreated, "enroll.enrolled"
	if e.Status == domain.StatusWaitlisted {
		status, key = http.StatusAccepted, "enroll.waitlisted"
	}
	writeJSON(w, status, toEnrollmentResponse(e, h.message(r, key, nil)))
}

// Cancel handles DELETE /activities/{id}/enrollments/{participantID}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	activityID, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	participantID, err := idParam(r, "participantID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	e, err := h.svc.Enrollments.Cancel(r.Context(), participantID, activityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEnrollmentResponse(e, h.message(r, "cancel.done", nil)))
}

// EnrollmentStatus handles GET /activities/{id}/enrollments/{participantID}
func (h *Handler) EnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	activityID, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	participantID, err := idParam(r, "participantID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	st, err := h.svc.Enrollments.StatusFor(r.Context(), participantID, activityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollmentStatusResponse{Enrolled: st.Enrolled, Waitlisted: st.Waitlisted})
}

// Waitlist handles GET /activities/{id}/waitlist
// Entries come oldest first, the order in which seats are handed out.
func (h *Handler) Waitlist(w http.ResponseWriter, r *http.Request) {
	activityID, err := idParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.Enrollments.Waitlist(r.Context(), activityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]enrollmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toEnrollmentResponse(&list[i], ""))
	}
	writeJSON(w, http.StatusOK, out)
}
