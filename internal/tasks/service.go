package tasks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hollis/teamhub/internal/database/models"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title       string
	Description string
	Assignee    string
	ProjectID   uuid.UUID
}

// UpdateInput is a sparse patch: zero-valued fields leave the stored entity
// untouched, so text fields cannot be reset to empty through this path.
type UpdateInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Assignee    string
	ProjectID   uuid.UUID
}

// Create persists a task against a project id. The reference is not
// validated against the project store.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Task, error) {
	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Assignee:    input.Assignee,
		ProjectID:   input.ProjectID,
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var list []models.Task
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByAssignee lists the tasks assigned to an email, deduplicated by id.
func (s *Service) ListByAssignee(ctx context.Context, email string) ([]models.Task, error) {
	var list []models.Task
	if err := s.db.WithContext(ctx).Where("assignee = ?", email).Find(&list).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(list))
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Status != "" && input.Status != task.Status {
		task.Status = input.Status
	}
	if input.Assignee != "" {
		task.Assignee = input.Assignee
	}
	if input.ProjectID != uuid.Nil {
		task.ProjectID = input.ProjectID
	}

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error
}
