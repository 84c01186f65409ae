package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hollis/teamhub/internal/api"
	"github.com/hollis/teamhub/internal/jobs"
	"github.com/hollis/teamhub/internal/meetings"
	"github.com/hollis/teamhub/pkg/config"
	"github.com/hollis/teamhub/pkg/queue"
	"github.com/hollis/teamhub/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting meeting server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
		"media_region", cfg.Chime.MediaRegion,
	)

	// Connect to Redis (used for the stale-meeting reaper and health)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis, reaper disabled", "error", err)
		redisClient = nil
	}

	// Initialize the conferencing provider and coordinator
	provider, err := meetings.NewChimeConferencing(context.Background(), cfg.Chime)
	if err != nil {
		logger.Error("failed to initialize conferencing provider", "error", err)
		os.Exit(1)
	}

	registry := meetings.NewRegistry()
	coordinator := meetings.NewCoordinator(registry, provider, cfg.Chime.MediaRegion, logger)

	// Create router. Auth happens at the gateway; the task service calls
	// this API directly without a token.
	router := api.NewMeetingRouter(api.RouterConfig{
		Redis:         redisClient,
		Logger:        logger,
		RateLimitReqs: cfg.RateLimit.Requests,
		RateLimitSecs: cfg.RateLimit.WindowSeconds,
	}, coordinator)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The reaper runs inside this process because the meeting registry is
	// in-memory; a separate worker binary would see an empty registry.
	var (
		asynqServer *asynq.Server
		scheduler   *asynq.Scheduler
	)
	if redisClient != nil {
		asynqServer = queue.NewServer(&cfg.Redis, 5)
		mux := asynq.NewServeMux()
		jobs.NewHandler(coordinator, logger).RegisterHandlers(mux)

		go func() {
			if err := asynqServer.Run(mux); err != nil {
				logger.Error("job server error", "error", err)
			}
		}()

		reapTask, err := jobs.NewMeetingReapTask(jobs.MeetingReapPayload{
			MaxAgeMinutes: cfg.Meetings.MaxAgeMinutes,
		})
		if err != nil {
			logger.Error("failed to build reap task", "error", err)
			os.Exit(1)
		}

		scheduler = queue.NewScheduler(&cfg.Redis)
		spec := fmt.Sprintf("@every %s", cfg.Meetings.ReapInterval())
		if _, err := scheduler.Register(spec, reapTask); err != nil {
			logger.Error("failed to schedule reap task", "error", err)
			os.Exit(1)
		}

		go func() {
			if err := scheduler.Run(); err != nil {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if scheduler != nil {
		scheduler.Shutdown()
	}
	if asynqServer != nil {
		asynqServer.Shutdown()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("server stopped")
}
