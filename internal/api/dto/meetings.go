package dto

type JoinMeetingRequest struct {
	MeetingName  string `json:"meetingName"`
	AttendeeName string `json:"attendeeName"`
	MediaRegion  string `json:"mediaRegion,omitempty"`
}

func (r JoinMeetingRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.MeetingName == "" {
		errors["meetingName"] = "Meeting name is required"
	}
	if r.AttendeeName == "" {
		errors["attendeeName"] = "Attendee name is required"
	}

	return errors
}
