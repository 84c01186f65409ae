package meetings

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup("project-1")
	assert.False(t, ok)

	r.Register("project-1", "m-1")
	entry, ok := r.Lookup("project-1")
	require.True(t, ok)
	assert.Equal(t, "m-1", entry.ProviderMeetingID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	r := NewRegistry()

	r.Register("project-1", "m-1")
	r.Register("project-1", "m-2")

	entry, ok := r.Lookup("project-1")
	require.True(t, ok)
	assert.Equal(t, "m-2", entry.ProviderMeetingID)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()

	r.Register("project-1", "m-1")
	r.Remove("project-1")
	r.Remove("project-1") // removing twice is harmless

	_, ok := r.Lookup("project-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Register("project-1", "m-1")

	snap := r.Snapshot()
	delete(snap, "project-1")

	_, ok := r.Lookup("project-1")
	assert.True(t, ok)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("project-%d", n)
			r.Register(name, fmt.Sprintf("m-%d", n))
			r.Lookup(name)
			r.Snapshot()
			if n%2 == 0 {
				r.Remove(name)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
}
