package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

func (h *Handler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		Name     string `json:"name"`
		JoinCode string `json:"join_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	game, err := h.games.CreateGame(r.Context(), req.Name, req.JoinCode, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: game})
}

func (h *Handler) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	game, err := h.games.GetGame(r.Context(), chi.URLParam(r, "gameID"), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

func (h *Handler) JoinGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		JoinCode string `json:"join_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	member, err := h.games.JoinByCode(r.Context(), req.JoinCode, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: member})
}

func (h *Handler) SetClueSequenceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		ClueIDs []string `json:"clue_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	game, err := h.games.SetClueSequence(r.Context(), chi.URLParam(r, "gameID"), req.ClueIDs, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

func (h *Handler) SetStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	if err := h.games.SetStatus(r.Context(), chi.URLParam(r, "gameID"), req.Status, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "status updated"})
}

func (h *Handler) SetVictoryConfigHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var cfg models.VictoryConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	if err := h.games.SetVictoryConfig(r.Context(), chi.URLParam(r, "gameID"), &cfg, userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "victory config updated"})
}

func (h *Handler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	standings, err := h.victory.Standings(r.Context(), chi.URLParam(r, "gameID"), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: standings})
}
