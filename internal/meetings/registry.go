package meetings

import (
	"sync"
	"time"
)

// Entry maps an application meeting id to the provider's meeting id. Entries
// live only as long as the coordinator believes the meeting is active; the
// provider's own state may diverge.
type Entry struct {
	ProviderMeetingID string
	CreatedAt         time.Time
}

// Registry is the in-memory mapping from application meeting names (project
// ids) to provider meeting ids. It is owned by the meeting coordinator
// process and injected as a dependency. Individual operations are atomic;
// compound check-then-act sequences are serialized by the coordinator's
// per-name locks, not here.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func (r *Registry) Lookup(meetingName string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[meetingName]
	return e, ok
}

// Register records the provider meeting id for a name, overwriting any
// previous entry.
func (r *Registry) Register(meetingName, providerMeetingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[meetingName] = Entry{
		ProviderMeetingID: providerMeetingID,
		CreatedAt:         time.Now().UTC(),
	}
}

// RegisterAt is Register with an explicit creation time, for callers that
// need to control staleness.
func (r *Registry) RegisterAt(meetingName, providerMeetingID string, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[meetingName] = Entry{
		ProviderMeetingID: providerMeetingID,
		CreatedAt:         createdAt,
	}
}

func (r *Registry) Remove(meetingName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, meetingName)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of all entries. Used by the stale-meeting reaper.
func (r *Registry) Snapshot() map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Entry, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}
