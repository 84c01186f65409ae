package gateway

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hollis/teamhub/internal/api/dto"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/auth"
)

// Config wires the gateway to its upstream services.
type Config struct {
	AuthURL        string
	TaskURL        string
	MeetingURL     string
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

// Gateway is the single public entrypoint. It validates tokens at the
// perimeter and forwards requests to the owning service by path prefix.
type Gateway struct {
	chi.Router
}

func New(cfg Config) (*Gateway, error) {
	authProxy, err := newProxy(cfg.AuthURL, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("auth upstream: %w", err)
	}
	taskProxy, err := newProxy(cfg.TaskURL, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("task upstream: %w", err)
	}
	meetingProxy, err := newProxy(cfg.MeetingURL, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("meeting upstream: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Registration, login and refresh are the only unauthenticated API
	// paths; everything else requires a valid token before it is
	// forwarded.
	r.Post("/api/v1/auth/register", authProxy.ServeHTTP)
	r.Post("/api/v1/auth/login", authProxy.ServeHTTP)
	r.Post("/api/v1/auth/refresh", authProxy.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTService))

		r.Handle("/api/v1/auth/*", authProxy)
		r.Handle("/api/v1/profile", authProxy)
		r.Handle("/api/v1/profile/*", authProxy)

		r.Handle("/api/v1/projects", taskProxy)
		r.Handle("/api/v1/projects/*", taskProxy)
		r.Handle("/api/v1/tasks", taskProxy)
		r.Handle("/api/v1/tasks/*", taskProxy)

		r.Handle("/api/v1/meetings", meetingProxy)
		r.Handle("/api/v1/meetings/*", meetingProxy)
	})

	return &Gateway{r}, nil
}

func newProxy(target string, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(u)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("upstream request failed",
			"upstream", u.Host,
			"path", r.URL.Path,
			"error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:      "Upstream service unavailable",
			StatusCode: http.StatusBadGateway,
		})
	}
	return proxy, nil
}
