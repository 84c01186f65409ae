package meetings

import (
	"context"
	"errors"
)

// ErrMeetingGone is the expected-not-found outcome of a provider call: the
// meeting no longer exists on the provider side. Callers treat it as benign
// (recreate on join, already-deleted on end). Every other error is
// unexpected and propagates.
var ErrMeetingGone = errors.New("meeting no longer exists at provider")

// MediaPlacement carries the provider's media connection URLs for a meeting.
type MediaPlacement struct {
	AudioHostURL     string `json:"audioHostUrl"`
	AudioFallbackURL string `json:"audioFallbackUrl"`
	SignalingURL     string `json:"signalingUrl"`
	TurnControlURL   string `json:"turnControlUrl"`
	ScreenDataURL    string `json:"screenDataUrl"`
	ScreenSharingURL string `json:"screenSharingUrl"`
	ScreenViewingURL string `json:"screenViewingUrl"`
}

// Meeting is the provider-side meeting a client connects to.
type Meeting struct {
	MeetingID         string         `json:"meetingId"`
	ExternalMeetingID string         `json:"externalMeetingId"`
	MediaRegion       string         `json:"mediaRegion"`
	MediaPlacement    MediaPlacement `json:"mediaPlacement"`
}

// Attendee is a single participant credential. One person may hold several
// simultaneously (multiple devices).
type Attendee struct {
	AttendeeID     string `json:"attendeeId"`
	ExternalUserID string `json:"externalUserId"`
	JoinToken      string `json:"joinToken"`
}

// JoinInfo is what a client needs to connect: the meeting's media placement
// plus the caller's attendee credentials.
type JoinInfo struct {
	Meeting  Meeting  `json:"meeting"`
	Attendee Attendee `json:"attendee"`
}

// Conferencing is the thin wrapper over the managed video-conferencing
// provider. GetMeeting and DeleteMeeting report a vanished meeting as
// ErrMeetingGone.
type Conferencing interface {
	CreateMeeting(ctx context.Context, externalMeetingID, mediaRegion string) (*Meeting, error)
	GetMeeting(ctx context.Context, meetingID string) (*Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
	CreateAttendee(ctx context.Context, meetingID, externalUserID string) (*Attendee, error)
}
