package routers

import (
	"github.com/Nitingarg01/Major-project-sub001/internal/handlers"
	"github.com/Nitingarg01/Major-project-sub001/internal/middleware"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/go-chi/chi/v5"
)

// SessionRoutes mounts the interview session API. jwtSecret may be empty,
// in which case requests are not authenticated.
func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, streamHandler *handlers.StreamHandler, jwtSecret string) {
	router.Route("/api/v1/sessions", func(r chi.Router) {
		// websocket clients cannot send an Authorization header
		r.Get("/{id}/stream", streamHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))

			r.With(middleware.ValidateRequest[*models.StartSessionRequest]()).Post("/", sessionHandler.StartSession)
			r.Get("/{id}", sessionHandler.GetSession)
			r.Get("/{id}/progress", sessionHandler.GetProgress)
			r.Get("/{id}/report", sessionHandler.GetReport)
			r.Get("/{id}/rounds/{index}/can-switch", sessionHandler.CanSwitch)
			r.With(middleware.ValidateRequest[*models.SwitchRoundRequest]()).Post("/{id}/switch", sessionHandler.SwitchRound)
			r.With(middleware.ValidateRequest[*models.CompleteRoundRequest]()).Post("/{id}/rounds/{index}/complete", sessionHandler.CompleteRound)
			r.With(middleware.ValidateRequest[*models.AlertRequest]()).Post("/{id}/alerts", sessionHandler.RecordAlert)
		})
	})
}
