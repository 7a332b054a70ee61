package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestArena creates and initializes an arena that is torn down when the
// test ends (unless the test already did so).
func newTestArena(t testing.TB, capacity int, opts *Options) *Arena {
	t.Helper()

	a, err := New(capacity, opts)
	require.NoError(t, err)
	require.NoError(t, a.Init())

	t.Cleanup(func() {
		if a.Initialized() {
			_ = a.Teardown()
		}
	})
	return a
}

// newArenaWithLayout creates an arena whose free list consists of segments of
// the given lengths in address order, each followed by one live spacer cell
// (except the last). It returns the arena and the start of every segment.
//
// The arena is built by allocating the whole capacity and releasing the
// segment ranges individually, so the spacers remain live.
func newArenaWithLayout(t testing.TB, lengths []int) (*Arena, []int) {
	t.Helper()

	capacity := 0
	for i, l := range lengths {
		capacity += l
		if i < len(lengths)-1 {
			capacity++
		}
	}

	a := newTestArena(t, capacity, nil)
	start, err := a.Allocate(capacity)
	require.NoError(t, err)
	require.Equal(t, 0, start)

	starts := make([]int, len(lengths))
	off := 0
	for i, l := range lengths {
		starts[i] = off
		require.NoError(t, a.Free(off, l))
		off += l + 1
	}

	segs := a.FreeSegments()
	require.Len(t, segs, len(lengths), "spacers must keep segments apart")
	for i, l := range lengths {
		require.Equal(t, Segment{Start: starts[i], Len: l}, segs[i])
	}
	return a, starts
}

// assertInvariants checks the free-list invariants and the capacity
// invariant: free cells plus live block lengths equal the capacity.
// live maps block start to length.
func assertInvariants(t testing.TB, a *Arena, live map[int]int) {
	t.Helper()

	require.NoError(t, a.CheckInvariants())

	liveCells := 0
	for start, length := range live {
		liveCells += length
		for addr := start; addr < start+length; addr++ {
			if !a.IsAllocated(addr) {
				assert.FailNow(t, "live block has a free cell", "block [%d,%d) cell %d", start, start+length, addr)
			}
		}
	}
	assert.Equal(t, a.Capacity(), a.FreeCells()+liveCells, "free + live must equal capacity")
}

// recordingTracker collects every Add call.
type recordingTracker struct {
	calls [][2]int
}

func (r *recordingTracker) Add(off, length int) {
	r.calls = append(r.calls, [2]int{off, length})
}
