package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hollis/teamhub/internal/api/handlers"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/auth"
	"github.com/hollis/teamhub/internal/meetings"
	"github.com/hollis/teamhub/internal/projects"
	"github.com/hollis/teamhub/internal/tasks"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

// RouterConfig carries the shared wiring every service router needs.
type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

// newBaseRouter applies the middleware stack shared by all services and
// mounts the health endpoints.
func newBaseRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Default to localhost for development - configure in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	return r
}

// NewAuthRouter wires the authentication and profile endpoints.
func NewAuthRouter(cfg RouterConfig, authService *auth.Service, profileService *auth.ProfileService) *Router {
	r := newBaseRouter(cfg)

	authHandler := handlers.NewAuthHandler(authService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Get("/all", profileHandler.ListAll)
				r.Post("/by-ids", profileHandler.ByIDs)
			})
		})
	})

	return &Router{r}
}

// NewTaskRouter wires the project and task endpoints. Everything under
// /api/v1 requires a valid token.
func NewTaskRouter(cfg RouterConfig, projectService *projects.Service, taskService *tasks.Service) *Router {
	r := newBaseRouter(cfg)

	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTService))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/all", projectHandler.ListAll)
			r.Get("/user/{userID}", projectHandler.ListByUser)
			r.Post("/", projectHandler.Create)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
			r.Post("/{id}/members", projectHandler.AddMember)
			r.Delete("/{id}/members/{userID}", projectHandler.RemoveMember)
			r.Post("/{id}/meetings/start", projectHandler.StartMeeting)
			r.Delete("/{id}/meetings", projectHandler.EndMeeting)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/project/{projectID}", taskHandler.ListByProject)
			r.Get("/user/{email}", taskHandler.ListByUser)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return &Router{r}
}

// NewMeetingRouter wires the conferencing broker endpoints. Tokens are
// validated at the gateway; the service itself stays unauthenticated so the
// task service's internal client can call it directly.
func NewMeetingRouter(cfg RouterConfig, coordinator *meetings.Coordinator) *Router {
	r := newBaseRouter(cfg)

	meetingHandler := handlers.NewMeetingHandler(coordinator)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/meetings/join", meetingHandler.Join)
		r.Delete("/meetings/{meetingName}", meetingHandler.End)
	})

	return &Router{r}
}
