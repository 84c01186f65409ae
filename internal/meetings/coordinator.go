package meetings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Coordinator orchestrates create-or-join and end operations against the
// conferencing provider and the local registry.
//
// State per meeting name: absent -> active (registry holds the provider
// meeting id) -> absent again after End or a provider-side not-found.
type Coordinator struct {
	registry    *Registry
	provider    Conferencing
	mediaRegion string // default when the caller supplies none
	logger      *slog.Logger

	// Per-name locks serialize the whole check-and-create sequence so two
	// concurrent first callers cannot each create a provider meeting.
	// Entries are refcounted and removed when the last holder releases,
	// so the map does not grow with every meeting name ever seen.
	lockMu sync.Mutex
	locks  map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

func NewCoordinator(registry *Registry, provider Conferencing, mediaRegion string, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		registry:    registry,
		provider:    provider,
		mediaRegion: mediaRegion,
		logger:      logger,
		locks:       make(map[string]*nameLock),
	}
}

func (c *Coordinator) lockName(meetingName string) *nameLock {
	c.lockMu.Lock()
	l, ok := c.locks[meetingName]
	if !ok {
		l = &nameLock{}
		c.locks[meetingName] = l
	}
	l.refs++
	c.lockMu.Unlock()

	l.mu.Lock()
	return l
}

func (c *Coordinator) unlockName(meetingName string, l *nameLock) {
	l.mu.Unlock()

	c.lockMu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, meetingName)
	}
	c.lockMu.Unlock()
}

// CreateOrJoin resolves the meeting for meetingName, creating one at the
// provider if none is registered (or if the registered one vanished
// provider-side), then unconditionally creates a fresh attendee on it.
//
// Attendee creation is not transactional with meeting creation: if it fails
// after a new meeting was created, the meeting stays registered and orphaned
// until ended (the reaper eventually collects it).
func (c *Coordinator) CreateOrJoin(ctx context.Context, meetingName, attendeeName, mediaRegion string) (*JoinInfo, error) {
	if mediaRegion == "" {
		mediaRegion = c.mediaRegion
	}

	lock := c.lockName(meetingName)
	defer c.unlockName(meetingName, lock)

	var meeting *Meeting

	if entry, ok := c.registry.Lookup(meetingName); ok {
		c.logger.Info("found existing meeting", "meeting_name", meetingName, "provider_meeting_id", entry.ProviderMeetingID)

		m, err := c.provider.GetMeeting(ctx, entry.ProviderMeetingID)
		switch {
		case err == nil:
			meeting = m
		case errors.Is(err, ErrMeetingGone):
			c.logger.Warn("registered meeting vanished at provider, creating replacement", "meeting_name", meetingName)
			meeting, err = c.createMeeting(ctx, meetingName, mediaRegion)
			if err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	} else {
		c.logger.Info("no existing meeting, creating", "meeting_name", meetingName)
		m, err := c.createMeeting(ctx, meetingName, mediaRegion)
		if err != nil {
			return nil, err
		}
		meeting = m
	}

	// Always a fresh attendee identity, so the same person can hold several
	// at once (multiple devices).
	externalUserID := fmt.Sprintf("%s#%s", attendeeName, uuid.NewString())
	attendee, err := c.provider.CreateAttendee(ctx, meeting.MeetingID, externalUserID)
	if err != nil {
		return nil, fmt.Errorf("creating attendee for %q: %w", meetingName, err)
	}

	return &JoinInfo{
		Meeting:  *meeting,
		Attendee: *attendee,
	}, nil
}

func (c *Coordinator) createMeeting(ctx context.Context, meetingName, mediaRegion string) (*Meeting, error) {
	meeting, err := c.provider.CreateMeeting(ctx, meetingName, mediaRegion)
	if err != nil {
		return nil, err
	}
	c.registry.Register(meetingName, meeting.MeetingID)
	return meeting, nil
}

// End deletes the provider meeting registered under meetingName. An unknown
// name and a provider-side not-found are both success. The registry entry is
// always removed, even when the provider deletion fails; the failure is
// still reported to the caller.
func (c *Coordinator) End(ctx context.Context, meetingName string) error {
	lock := c.lockName(meetingName)
	defer c.unlockName(meetingName, lock)

	entry, ok := c.registry.Lookup(meetingName)
	if !ok {
		c.logger.Warn("end requested for unknown meeting", "meeting_name", meetingName)
		return nil
	}

	defer c.registry.Remove(meetingName)

	err := c.provider.DeleteMeeting(ctx, entry.ProviderMeetingID)
	switch {
	case err == nil:
		c.logger.Info("deleted provider meeting", "meeting_name", meetingName, "provider_meeting_id", entry.ProviderMeetingID)
		return nil
	case errors.Is(err, ErrMeetingGone):
		c.logger.Warn("provider meeting already deleted", "meeting_name", meetingName, "provider_meeting_id", entry.ProviderMeetingID)
		return nil
	default:
		c.logger.Error("provider deletion failed, clearing registry entry anyway",
			"meeting_name", meetingName,
			"provider_meeting_id", entry.ProviderMeetingID,
			"error", err,
		)
		return err
	}
}

// Stale returns the names of registered meetings older than maxAge.
func (c *Coordinator) Stale(maxAge time.Duration) []string {
	var names []string
	for name, entry := range c.registry.Snapshot() {
		if time.Since(entry.CreatedAt) > maxAge {
			names = append(names, name)
		}
	}
	return names
}
