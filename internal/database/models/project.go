package models

import (
	"time"

	"github.com/google/uuid"
)

// ActiveMeetingInfo is the denormalized marker recording that a meeting is
// believed running for a project. At most one per project.
type ActiveMeetingInfo struct {
	ChimeMeetingID       string    `json:"chimeMeetingId"`
	ApplicationMeetingID string    `json:"applicationMeetingId"`
	StartedBy            string    `json:"startedBy"`
	StartedAt            time.Time `json:"startedAt"`
}

type Project struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	Members     UUIDArray `gorm:"type:text" json:"members"`

	// Active meeting marker, nil when no meeting is running.
	ActiveMeeting *ActiveMeetingInfo `gorm:"serializer:json" json:"active_meeting,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// IsMember reports whether the user belongs to the project's member set.
// The creator is not implicitly a member unless also listed.
func (p *Project) IsMember(userID uuid.UUID) bool {
	return p.Members.Contains(userID)
}
