package dto

import "github.com/hollis/teamhub/internal/api/validation"

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
}

func (r CreateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Project name is required"
	}
	for _, m := range r.Members {
		if m != "" && !validation.IsValidUUID(m) {
			errors["members"] = "Member ids must be valid UUIDs"
			break
		}
	}

	return errors
}

type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r UpdateProjectRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Name == "" {
		errors["name"] = "Project name is required"
	}
	return errors
}

type AddMemberRequest struct {
	UserID string `json:"userId"`
}

func (r AddMemberRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.UserID == "" {
		errors["userId"] = "User ID is required"
	} else if !validation.IsValidUUID(r.UserID) {
		errors["userId"] = "User ID must be a valid UUID"
	}
	return errors
}
