package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/hollis/teamhub/internal/meetings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingConferencing counts deletions so the reaper's sweep is observable.
type trackingConferencing struct {
	live    map[string]*meetings.Meeting
	deleted int
}

func newTrackingConferencing() *trackingConferencing {
	return &trackingConferencing{live: make(map[string]*meetings.Meeting)}
}

func (f *trackingConferencing) CreateMeeting(_ context.Context, externalMeetingID, mediaRegion string) (*meetings.Meeting, error) {
	m := &meetings.Meeting{
		MeetingID:         uuid.NewString(),
		ExternalMeetingID: externalMeetingID,
		MediaRegion:       mediaRegion,
	}
	f.live[m.MeetingID] = m
	return m, nil
}

func (f *trackingConferencing) GetMeeting(_ context.Context, meetingID string) (*meetings.Meeting, error) {
	m, ok := f.live[meetingID]
	if !ok {
		return nil, meetings.ErrMeetingGone
	}
	return m, nil
}

func (f *trackingConferencing) DeleteMeeting(_ context.Context, meetingID string) error {
	if _, ok := f.live[meetingID]; !ok {
		return meetings.ErrMeetingGone
	}
	delete(f.live, meetingID)
	f.deleted++
	return nil
}

func (f *trackingConferencing) CreateAttendee(_ context.Context, meetingID, externalUserID string) (*meetings.Attendee, error) {
	return &meetings.Attendee{
		AttendeeID:     uuid.NewString(),
		ExternalUserID: externalUserID,
		JoinToken:      "token",
	}, nil
}

func TestNewMeetingReapTask(t *testing.T) {
	task, err := NewMeetingReapTask(MeetingReapPayload{MaxAgeMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, TypeMeetingReap, task.Type())
	assert.Contains(t, string(task.Payload()), "60")
}

func TestHandleMeetingReap(t *testing.T) {
	provider := newTrackingConferencing()
	registry := meetings.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := meetings.NewCoordinator(registry, provider, "us-east-1", logger)
	handler := NewHandler(coordinator, logger)

	ctx := context.Background()

	// One fresh meeting and one that the reaper should collect. The stale
	// entry is created through the provider, then backdated in the registry.
	_, err := coordinator.CreateOrJoin(ctx, "fresh", "alice", "")
	require.NoError(t, err)

	old, err := provider.CreateMeeting(ctx, "old", "us-east-1")
	require.NoError(t, err)
	registry.Register("old", old.MeetingID)
	backdate(t, registry, "old", 3*time.Hour)

	task, err := NewMeetingReapTask(MeetingReapPayload{MaxAgeMinutes: 120})
	require.NoError(t, err)

	require.NoError(t, handler.HandleMeetingReap(ctx, task))

	_, ok := registry.Lookup("old")
	assert.False(t, ok)
	_, ok = registry.Lookup("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, provider.deleted)
}

func TestHandleMeetingReap_EmptyRegistry(t *testing.T) {
	provider := newTrackingConferencing()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := meetings.NewCoordinator(meetings.NewRegistry(), provider, "us-east-1", logger)
	handler := NewHandler(coordinator, logger)

	task, err := NewMeetingReapTask(MeetingReapPayload{MaxAgeMinutes: 120})
	require.NoError(t, err)
	assert.NoError(t, handler.HandleMeetingReap(context.Background(), task))
}

func TestHandleMeetingReap_BadPayload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := meetings.NewCoordinator(meetings.NewRegistry(), newTrackingConferencing(), "us-east-1", logger)
	handler := NewHandler(coordinator, logger)

	task := asynq.NewTask(TypeMeetingReap, []byte("{not json"))
	assert.Error(t, handler.HandleMeetingReap(context.Background(), task))
}

// backdate rewrites a registry entry's creation time so it reads as stale.
func backdate(t *testing.T, registry *meetings.Registry, name string, age time.Duration) {
	t.Helper()
	entry, ok := registry.Lookup(name)
	require.True(t, ok)
	registry.RegisterAt(name, entry.ProviderMeetingID, time.Now().Add(-age))
}
