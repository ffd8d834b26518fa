package handlers

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/games", h.CreateGameHandler)
			r.Get("/games/{gameID}", h.GetGameHandler)
			r.Post("/games/join", h.JoinGameHandler)
			r.Put("/games/{gameID}/sequence", h.SetClueSequenceHandler)
			r.Put("/games/{gameID}/status", h.SetStatusHandler)
			r.Put("/games/{gameID}/victory", h.SetVictoryConfigHandler)
			r.Get("/games/{gameID}/standings", h.StandingsHandler)

			r.Post("/games/{gameID}/teams", h.CreateTeamHandler)
			r.Put("/members/{memberID}/team", h.AssignMemberHandler)
			r.Post("/teams/{teamID}/advance", h.ManualAdvanceHandler)

			r.Post("/submissions", h.CreateSubmissionHandler)
			r.Get("/submissions/{submissionID}", h.GetSubmissionHandler)
			r.Put("/submissions/{submissionID}", h.EditSubmissionHandler)
			r.Delete("/submissions/{submissionID}", h.DeleteSubmissionHandler)
			r.Post("/submissions/{submissionID}/review", h.ReviewSubmissionHandler)

			r.Post("/evidence", h.UploadEvidenceHandler)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
