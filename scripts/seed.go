//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/auth"
	"github.com/hollis/teamhub/internal/database"
	"github.com/hollis/teamhub/internal/database/models"
	"github.com/hollis/teamhub/pkg/config"
	"github.com/hollis/teamhub/pkg/util"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds an admin account plus a demo project with a couple of tasks, so a
// fresh install has something to click on.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.MigrateAuth(db); err != nil {
		log.Fatalf("failed to run auth migrations: %v", err)
	}
	if err := database.MigrateTasks(db); err != nil {
		log.Fatalf("failed to run task migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService)

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	password := envOr("ADMIN_PASSWORD", "admin123!")
	username := envOr("ADMIN_USERNAME", "admin")

	resp, err := authService.Register(context.Background(), auth.RegisterInput{
		Username: username,
		FullName: "Administrator",
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			fmt.Printf("Admin user already exists: %s\n", email)
			return
		}
		log.Fatalf("failed to create admin user: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("role", models.RoleAdmin).Error; err != nil {
		log.Fatalf("failed to promote admin user: %v", err)
	}

	if err := seedDemoProject(db, resp.User.ID, email); err != nil {
		log.Fatalf("failed to seed demo project: %v", err)
	}

	fmt.Printf("Admin user created successfully!\n")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Token: %s\n", resp.Token)
}

func seedDemoProject(db *gorm.DB, adminID uuid.UUID, adminEmail string) error {
	project := models.Project{
		Name:        "Getting Started",
		Description: "A demo project to explore boards, members and meetings.",
		CreatedBy:   adminID,
		Members:     models.UUIDArray{adminID},
	}
	if err := db.Create(&project).Error; err != nil {
		return err
	}

	tasks := []models.Task{
		{
			Title:       "Invite your team",
			Description: "Add teammates under project members.",
			Status:      models.TaskStatusPending,
			Assignee:    adminEmail,
			ProjectID:   project.ID,
		},
		{
			Title:       "Start a meeting",
			Description: "Any project member can start or join the project meeting.",
			Status:      models.TaskStatusPending,
			Assignee:    adminEmail,
			ProjectID:   project.ID,
		},
	}
	for i := range tasks {
		tasks[i].CreatedAt = time.Now().UTC()
		if err := db.Create(&tasks[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Seeded project %q with %d tasks\n", project.Name, len(tasks))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
