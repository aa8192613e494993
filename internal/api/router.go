package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskboard/taskboard-be/internal/api/handlers"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	tokens *auth.Manager,
	authService services.AuthServiceProvider,
	taskService services.TaskServiceProvider,
	eventService services.EventServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the browser client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware(authService))
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// Everything below requires a bearer token identifying the owner.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware(authService))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", taskHandler.Update)
					r.Delete("/", taskHandler.Delete)
				})
			})

			r.Get("/events", eventHandler.GetRecent)
			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
