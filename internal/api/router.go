package api

import (
	"net/http"

	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/handlers"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/api/middleware"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/config"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/domain"
	"github.com/fabio248/Fabio-Flores-REST-Nerdery-Challenge/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(services.User)
	authHandler := handlers.NewAuthHandler(services.Auth)
	postHandler := handlers.NewPostHandler(services.Post, services.Comment, services.Report)
	commentHandler := handlers.NewCommentHandler(services.Comment, services.Report)
	reportHandler := handlers.NewReportHandler(services.Report)

	auth := middleware.Auth(services.Auth)
	limit := middleware.RateLimit(5, 10)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Use(limit)
			r.Post("/", accountHandler.Create)
			r.Post("/confirm-account", accountHandler.Confirm)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", accountHandler.Me)
				r.Patch("/me", accountHandler.Update)
				r.Delete("/me", accountHandler.Delete)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(limit)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)
			r.Get("/{id}/comments", postHandler.ListComments)
			r.Get("/{id}/reactions", postHandler.ListReactions)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Post("/", postHandler.Create)
				r.Patch("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
				r.Post("/{id}/reactions", postHandler.React)
				r.Post("/{id}/comments", postHandler.CreateComment)
				r.Post("/{id}/reports", postHandler.Report)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", commentHandler.List)
			r.Get("/{id}", commentHandler.Get)
			r.Get("/{id}/reactions", commentHandler.ListReactions)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Patch("/{id}", commentHandler.Update)
				r.Delete("/{id}", commentHandler.Delete)
				r.Post("/{id}/reactions", commentHandler.React)
				r.Post("/{id}/reports", commentHandler.Report)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(auth)
			r.Use(middleware.RequireRole(domain.RoleModerator))
			r.Get("/", reportHandler.List)
		})
	})

	return r
}
