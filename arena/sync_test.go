package arena

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSynchronized_ConcurrentChurn(t *testing.T) {
	a, err := New(256, nil)
	require.NoError(t, err)
	m := Synchronized(a)
	require.NoError(t, m.Init())
	defer m.Teardown()

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				start, err := m.Allocate(4)
				if err != nil {
					// Other workers may hold the remaining space.
					continue
				}
				if _, err := m.Increment(start); err != nil {
					return err
				}
				v, err := m.Read(start)
				if err != nil {
					return err
				}
				if v != 1 {
					return fmt.Errorf("cell %d = %d, want 1", start, v)
				}
				if err := m.Free(start, 4); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 256, m.FreeCells())
	assert.Equal(t, []Segment{{Start: 0, Len: 256}}, m.FreeSegments())
	require.NoError(t, a.CheckInvariants())
}

func TestSynchronized_Idempotent(t *testing.T) {
	a, err := New(8, nil)
	require.NoError(t, err)

	m := Synchronized(a)
	assert.Same(t, m, Synchronized(m), "wrapping twice returns the same wrapper")
	assert.Equal(t, 8, m.Capacity())
	assert.False(t, m.IsAllocated(0))
}
