package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tracker_ExactCells(t *testing.T) {
	tr := NewTracker(1)
	tr.Add(10, 2)
	tr.Add(3, 1)

	assert.Equal(t, []Range{{Off: 3, Len: 1}, {Off: 10, Len: 2}}, tr.Ranges())
	assert.Equal(t, 2, tr.Len())
}

func Test_Tracker_MergesOverlappingAndAdjacent(t *testing.T) {
	tr := NewTracker(1)
	tr.Add(0, 5)
	tr.Add(5, 5)  // adjacent
	tr.Add(7, 10) // overlapping
	tr.Add(30, 1)

	got := tr.Ranges()
	require.Len(t, got, 2)
	assert.Equal(t, Range{Off: 0, Len: 17}, got[0])
	assert.Equal(t, Range{Off: 30, Len: 1}, got[1])
}

func Test_Tracker_ContainedRangeDoesNotShrink(t *testing.T) {
	tr := NewTracker(1)
	tr.Add(0, 20)
	tr.Add(5, 2)

	assert.Equal(t, []Range{{Off: 0, Len: 20}}, tr.Ranges())
}

func Test_Tracker_BlockAlignment(t *testing.T) {
	tr := NewTracker(8)
	tr.Add(3, 2)  // block [0,8)
	tr.Add(17, 1) // block [16,24)

	assert.Equal(t, []Range{{Off: 0, Len: 8}, {Off: 16, Len: 8}}, tr.Ranges())

	tr.Add(9, 1) // block [8,16) bridges the two
	assert.Equal(t, []Range{{Off: 0, Len: 24}}, tr.Ranges())
}

func Test_Tracker_ResetAndEmpty(t *testing.T) {
	tr := NewTracker(0)
	assert.Nil(t, tr.Ranges())

	tr.Add(4, 0)
	tr.Add(4, -1)
	assert.Equal(t, 0, tr.Len(), "empty ranges are ignored")

	tr.Add(4, 1)
	tr.Reset()
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Ranges())
}
