package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/evidence"
	"github.com/huntmaster/hunt-services/internal/huntsvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	games       *service.GameService
	teams       *service.TeamService
	submissions *service.SubmissionService
	victory     *service.VictoryService
	uploader    evidence.Uploader
}

func NewHandler(games *service.GameService, teams *service.TeamService,
	submissions *service.SubmissionService, victory *service.VictoryService,
	uploader evidence.Uploader) *Handler {
	return &Handler{
		games:       games,
		teams:       teams,
		submissions: submissions,
		victory:     victory,
		uploader:    uploader,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// ErrorStatus maps the error taxonomy to HTTP statuses: validation 400,
// authorization 403, not-found 404, conflict 409, anything else 500.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := ErrorStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error" // don't leak store details
	}
	h.CreateResponse(w, Response{Code: code, Error: msg})
}

// callerID pulls the resolved user identity out of the JWT claims. Session
// establishment happens upstream; this service only consumes the result.
func (h *Handler) callerID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("missing user_id claim")
	}
	return userID, nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "hunt service is running at port " + os.Getenv("HUNT_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
