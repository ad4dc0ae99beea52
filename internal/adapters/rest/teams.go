package rest

import "net/http"

// RegisterTeam handles POST /teams
func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var req registerTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	t, err := h.svc.Teams.RegisterTeam(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamResponse(t))
}

// ListTeams handles GET /teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Teams.ListTeams(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]teamResponse, 0, len(list))
	for i := range list {
		out = append(out, toTeamResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListStates handles GET /contest/states
func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.Teams.ListStates(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]stateSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, stateSlotResponse{State: s.State, Taken: s.Taken, TeamID: s.TeamID})
	}
	writeJSON(w, http.StatusOK, out)
}
