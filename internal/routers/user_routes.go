package routers

import (
	"github.com/Nitingarg01/Major-project-sub001/internal/handlers"
	"github.com/Nitingarg01/Major-project-sub001/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(router *chi.Mux, userHandler *handlers.UserHandler, jwtSecret string) {
	router.Route("/api/v1/users/{userId}", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Get("/sessions", userHandler.GetHistory)
		r.Get("/stats", userHandler.GetStats)
	})
}

func CompanyRoutes(router *chi.Mux, companyHandler *handlers.CompanyHandler) {
	router.Get("/api/v1/companies/{name}", companyHandler.GetCompany)
}
