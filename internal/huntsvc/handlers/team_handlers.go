package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
)

func (h *Handler) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), chi.URLParam(r, "gameID"), req.Name, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: team})
}

func (h *Handler) AssignMemberHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		TeamID string `json:"team_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	if err := h.teams.AssignMember(r.Context(), chi.URLParam(r, "memberID"), req.TeamID, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "member assigned"})
}

func (h *Handler) ManualAdvanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	team, err := h.teams.ManualAdvance(r.Context(), chi.URLParam(r, "teamID"), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: team})
}
