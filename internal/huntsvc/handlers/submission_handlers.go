package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

type submissionRequest struct {
	TeamID    string          `json:"team_id"`
	ClueIndex int             `json:"clue_index"`
	Evidence  models.Evidence `json:"evidence"`
}

func (h *Handler) CreateSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	sub, err := h.submissions.Create(r.Context(), req.TeamID, req.ClueIndex, req.Evidence, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: sub})
}

func (h *Handler) GetSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	sub, err := h.submissions.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: sub})
}

func (h *Handler) EditSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		Evidence models.Evidence `json:"evidence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	sub, err := h.submissions.Edit(r.Context(), chi.URLParam(r, "submissionID"), req.Evidence, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: sub})
}

func (h *Handler) DeleteSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	if err := h.submissions.Delete(r.Context(), chi.URLParam(r, "submissionID"), userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Message: "submission deleted"})
}

func (h *Handler) ReviewSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	var req struct {
		Decision     string `json:"decision"`
		AdminComment string `json:"admin_comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid request body"})
		return
	}

	sub, err := h.submissions.Review(r.Context(), chi.URLParam(r, "submissionID"), req.Decision, req.AdminComment, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: sub})
}
