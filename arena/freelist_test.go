package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FreeList_InsertKeepsOrder(t *testing.T) {
	fl := freeList{head: nilIdx}
	for _, start := range []int{40, 10, 70, 0, 25} {
		fl.insert(start, 2)
	}

	var got []int
	for _, s := range fl.segments() {
		got = append(got, s.Start)
	}
	assert.Equal(t, []int{0, 10, 25, 40, 70}, got)
	assert.Equal(t, 5, fl.count)
	require.NoError(t, fl.check(100))
}

func Test_FreeList_CoversAndOverlaps(t *testing.T) {
	fl := freeList{head: nilIdx}
	fl.insert(10, 5) // [10,15)
	fl.insert(30, 5) // [30,35)

	for addr, want := range map[int]bool{9: false, 10: true, 14: true, 15: false, 29: false, 34: true, 35: false} {
		assert.Equal(t, want, fl.covers(addr), "covers(%d)", addr)
	}

	assert.False(t, fl.overlaps(0, 10), "ends where a segment starts")
	assert.True(t, fl.overlaps(0, 11))
	assert.True(t, fl.overlaps(14, 20))
	assert.False(t, fl.overlaps(15, 30))
	assert.True(t, fl.overlaps(12, 13), "fully inside")
	assert.True(t, fl.overlaps(0, 100), "spans both")
}

// Test_FreeList_RecordsAreRecycled verifies that allocate/free churn reuses
// records instead of growing the backing slice.
func Test_FreeList_RecordsAreRecycled(t *testing.T) {
	a := newTestArena(t, 64, nil)

	for round := 0; round < 3; round++ {
		var starts []int
		for i := 0; i < 8; i++ {
			s, err := a.Allocate(8)
			require.NoError(t, err)
			starts = append(starts, s)
		}
		// Free every other block, then the rest, to force splits and merges.
		for i := 0; i < len(starts); i += 2 {
			require.NoError(t, a.Free(starts[i], 8))
		}
		for i := 1; i < len(starts); i += 2 {
			require.NoError(t, a.Free(starts[i], 8))
		}
		require.Equal(t, []Segment{{Start: 0, Len: 64}}, a.FreeSegments())
	}

	assert.LessOrEqual(t, len(a.free.recs), 5, "records should be recycled, got %d", len(a.free.recs))
}

func Test_FreeList_TakeAndUnlink(t *testing.T) {
	fl := freeList{head: nilIdx}
	fl.reset(10)

	start, exact := fl.take(fl.head, 4)
	assert.Equal(t, 0, start)
	assert.False(t, exact)
	assert.Equal(t, []Segment{{Start: 4, Len: 6}}, fl.segments())

	start, exact = fl.take(fl.head, 6)
	assert.Equal(t, 4, start)
	assert.True(t, exact)
	assert.Empty(t, fl.segments())
	assert.Equal(t, nilIdx, fl.head)
	assert.Equal(t, 0, fl.count)
	require.NoError(t, fl.check(10))
}

func Test_FreeList_CheckDetectsCorruption(t *testing.T) {
	fl := freeList{head: nilIdx}
	fl.insert(0, 5)
	fl.insert(5, 5) // adjacent, not yet coalesced
	require.ErrorIs(t, fl.check(100), ErrCorrupt)

	fl.coalesce()
	require.NoError(t, fl.check(100))
	require.ErrorIs(t, fl.check(8), ErrCorrupt, "segment extends past capacity")
}
