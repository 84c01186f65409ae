package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeMeetingReap = "meetings:reap"
)

// MeetingReapPayload configures one sweep of the stale-meeting reaper.
type MeetingReapPayload struct {
	MaxAgeMinutes int `json:"max_age_minutes"`
}

func NewMeetingReapTask(payload MeetingReapPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMeetingReap, data, asynq.Queue("low")), nil
}
