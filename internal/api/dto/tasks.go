package dto

import (
	"github.com/hollis/teamhub/internal/api/validation"
	"github.com/hollis/teamhub/internal/database/models"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	ProjectID   string `json:"projectId"`
}

func (r CreateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Task title is required"
	}
	if r.ProjectID == "" {
		errors["projectId"] = "Project ID is required"
	} else if !validation.IsValidUUID(r.ProjectID) {
		errors["projectId"] = "Project ID must be a valid UUID"
	}

	return errors
}

// UpdateTaskRequest is a sparse patch: omitted fields keep their stored
// values.
type UpdateTaskRequest struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Status      models.TaskStatus `json:"status,omitempty"`
	Assignee    string            `json:"assignee,omitempty"`
	ProjectID   string            `json:"projectId,omitempty"`
}

func (r UpdateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != "" && !r.Status.Valid() {
		errors["status"] = "Status must be Pending, InProgress or Completed"
	}
	if r.ProjectID != "" && !validation.IsValidUUID(r.ProjectID) {
		errors["projectId"] = "Project ID must be a valid UUID"
	}

	return errors
}
