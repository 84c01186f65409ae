package models

import "github.com/google/uuid"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is one of the three known statuses. Any status is
// reachable from any other; there is no enforced transition order.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `gorm:"default:'Pending'" json:"status"`
	Assignee    string     `gorm:"index" json:"assignee"` // user email

	// Owning project. Not a foreign-key constraint: tasks may reference a
	// project id that no longer exists.
	ProjectID uuid.UUID `gorm:"type:uuid;index" json:"project_id"`
}

func (Task) TableName() string {
	return "tasks"
}
