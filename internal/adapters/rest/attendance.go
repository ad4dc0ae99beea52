package rest

import "net/http"

// RecordAttendance handles POST /activities/{id}/attendance
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
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

	a, err := h.svc.Attendance.Record(r.Context(), req.ParticipantID, activityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, attendanceResponse{
		ID:            a.ID,
		ParticipantID: a.ParticipantID,
		ActivityID:    a.ActivityID,
		Status:        a.Status,
		RecordedAt:    a.RecordedAt.In(h.loc),
		Message:       h.message(r, "attendance.recorded", nil),
	})
}
