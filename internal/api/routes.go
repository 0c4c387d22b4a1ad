package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	// Outbound / inbound mail
	r.Post("/send", h.SendMail)
	r.Post("/testsmtp", h.TestSMTP)
	r.Get("/mailbox", h.GetMailbox)

	// Templates
	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.ListTemplates)
		r.Post("/", h.CreateTemplate)
		r.Get("/{id}", h.GetTemplate)
		r.Put("/{id}", h.UpdateTemplate)
		r.Delete("/{id}", h.DeleteTemplate)
		r.Post("/{id}/preview", h.PreviewTemplate)
	})

	// Campaigns
	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", h.ListCampaigns)
		r.Post("/", h.CreateCampaign)
		r.Get("/{id}", h.GetCampaign)
		r.Put("/{id}", h.UpdateCampaign)
		r.Delete("/{id}", h.DeleteCampaign)
	})

	return r
}
