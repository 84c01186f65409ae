package meetings

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/chimesdkmeetings"
	"github.com/aws/aws-sdk-go-v2/service/chimesdkmeetings/types"
	"github.com/google/uuid"
	"github.com/hollis/teamhub/pkg/config"
)

// ChimeConferencing implements Conferencing on the AWS Chime SDK Meetings API.
type ChimeConferencing struct {
	client *chimesdkmeetings.Client
}

// NewChimeConferencing builds a Chime-backed adapter. Static credentials
// from the config take precedence over the default AWS credential chain.
func NewChimeConferencing(ctx context.Context, cfg config.ChimeConfig) (*ChimeConferencing, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ChimeConferencing{client: chimesdkmeetings.NewFromConfig(awsCfg)}, nil
}

func (c *ChimeConferencing) CreateMeeting(ctx context.Context, externalMeetingID, mediaRegion string) (*Meeting, error) {
	out, err := c.client.CreateMeeting(ctx, &chimesdkmeetings.CreateMeetingInput{
		// Fresh idempotency token per call: retries of the same logical
		// request are not deduplicated across callers.
		ClientRequestToken: aws.String(uuid.NewString()),
		ExternalMeetingId:  aws.String(externalMeetingID),
		MediaRegion:        aws.String(mediaRegion),
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider meeting: %w", err)
	}
	return fromChimeMeeting(out.Meeting), nil
}

func (c *ChimeConferencing) GetMeeting(ctx context.Context, meetingID string) (*Meeting, error) {
	out, err := c.client.GetMeeting(ctx, &chimesdkmeetings.GetMeetingInput{
		MeetingId: aws.String(meetingID),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMeetingGone
		}
		return nil, fmt.Errorf("fetching provider meeting: %w", err)
	}
	return fromChimeMeeting(out.Meeting), nil
}

func (c *ChimeConferencing) DeleteMeeting(ctx context.Context, meetingID string) error {
	_, err := c.client.DeleteMeeting(ctx, &chimesdkmeetings.DeleteMeetingInput{
		MeetingId: aws.String(meetingID),
	})
	if err != nil {
		if isNotFound(err) {
			return ErrMeetingGone
		}
		return fmt.Errorf("deleting provider meeting: %w", err)
	}
	return nil
}

func (c *ChimeConferencing) CreateAttendee(ctx context.Context, meetingID, externalUserID string) (*Attendee, error) {
	out, err := c.client.CreateAttendee(ctx, &chimesdkmeetings.CreateAttendeeInput{
		MeetingId:      aws.String(meetingID),
		ExternalUserId: aws.String(externalUserID),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrMeetingGone
		}
		return nil, fmt.Errorf("creating attendee: %w", err)
	}
	return &Attendee{
		AttendeeID:     aws.ToString(out.Attendee.AttendeeId),
		ExternalUserID: aws.ToString(out.Attendee.ExternalUserId),
		JoinToken:      aws.ToString(out.Attendee.JoinToken),
	}, nil
}

func isNotFound(err error) bool {
	var nfe *types.NotFoundException
	return errors.As(err, &nfe)
}

func fromChimeMeeting(m *types.Meeting) *Meeting {
	meeting := &Meeting{
		MeetingID:         aws.ToString(m.MeetingId),
		ExternalMeetingID: aws.ToString(m.ExternalMeetingId),
		MediaRegion:       aws.ToString(m.MediaRegion),
	}
	if mp := m.MediaPlacement; mp != nil {
		meeting.MediaPlacement = MediaPlacement{
			AudioHostURL:     aws.ToString(mp.AudioHostUrl),
			AudioFallbackURL: aws.ToString(mp.AudioFallbackUrl),
			SignalingURL:     aws.ToString(mp.SignalingUrl),
			TurnControlURL:   aws.ToString(mp.TurnControlUrl),
			ScreenDataURL:    aws.ToString(mp.ScreenDataUrl),
			ScreenSharingURL: aws.ToString(mp.ScreenSharingUrl),
			ScreenViewingURL: aws.ToString(mp.ScreenViewingUrl),
		}
	}
	return meeting
}

var _ Conferencing = (*ChimeConferencing)(nil)
