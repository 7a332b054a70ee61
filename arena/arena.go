package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/cellvm/internal/bounds"
)

// DefaultCapacity is the cell count used by the interpreter when none is configured.
const DefaultCapacity = 100

// MaxCapacity is the largest cell count New accepts (1 GiB of cells).
const MaxCapacity = 1 << 28

// Options configures an Arena. A nil *Options selects the defaults.
type Options struct {
	// Tracker, when set, is told about every cell range the arena modifies:
	// zeroing on Allocate, Write, Increment and Decrement.
	Tracker DirtyTracker

	// Mapped backs the cells with an anonymous memory mapping instead of a Go
	// slice. Teardown unmaps it. Platforms without mmap fall back to the heap.
	Mapped bool
}

// Stats holds cumulative counters since the last Init.
type Stats struct {
	Allocs       int `json:"allocs"        yaml:"allocs"`        // Successful Allocate calls
	FailedAllocs int `json:"failed_allocs" yaml:"failed_allocs"` // Allocate calls that returned ErrOutOfSpace
	ExactFits    int `json:"exact_fits"    yaml:"exact_fits"`    // Allocations that consumed a whole segment
	Splits       int `json:"splits"        yaml:"splits"`        // Allocations carved from a larger segment
	Frees        int `json:"frees"         yaml:"frees"`         // Successful Free calls
	Merges       int `json:"merges"        yaml:"merges"`        // Segment pairs merged by coalescing
	Reads        int `json:"reads"         yaml:"reads"`         // Successful reads
	Writes       int `json:"writes"        yaml:"writes"`        // Successful writes, increments and decrements
}

type state uint8

const (
	stateUninitialized state = iota
	stateInitialized
)

// Arena is a fixed-capacity array of int32 cells managed by a best-fit
// free-list allocator.
//
// Allocation status is never stored per cell: an address is live exactly
// when it is in range and not covered by a free segment. The caller keeps
// the (start, length) of each block and hands both back to Free.
//
// An Arena is not safe for concurrent use. Wrap it with Synchronized when
// several goroutines share one.
type Arena struct {
	capacity int
	cells    []int32
	release  func() error
	free     freeList
	state    state

	dt     DirtyTracker
	mapped bool

	stats Stats
}

// New returns an uninitialized arena of capacity cells. Call Init before use.
// capacity must be in [1, MaxCapacity].
func New(capacity int, opts *Options) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity=%d max=%d", ErrInvalidSize, capacity, MaxCapacity)
	}
	if opts == nil {
		opts = &Options{}
	}
	return &Arena{
		capacity: capacity,
		dt:       opts.Tracker,
		mapped:   opts.Mapped,
		free:     freeList{head: nilIdx},
	}, nil
}

// Init zeroes every cell and installs a single free segment spanning the
// arena. Calling Init on a live arena fails instead of resetting it.
func (a *Arena) Init() error {
	if a.state == stateInitialized {
		return ErrAlreadyInitialized
	}

	var (
		cells   []int32
		release func() error
		err     error
	)
	if a.mapped {
		cells, release, err = mapCells(a.capacity)
	} else {
		cells, release, err = heapCells(a.capacity)
	}
	if err != nil {
		return err
	}
	clear(cells)

	a.cells = cells
	a.release = release
	a.free.reset(a.capacity)
	a.stats = Stats{}
	a.state = stateInitialized
	return nil
}

// Teardown releases the cells and the free list. Outstanding allocations are
// discarded. The arena can be initialized again afterwards.
func (a *Arena) Teardown() error {
	if a.state != stateInitialized {
		return ErrNotInitialized
	}
	var err error
	if a.release != nil {
		err = a.release()
	}
	a.cells = nil
	a.release = nil
	a.free.clear()
	a.state = stateUninitialized
	if err != nil {
		return fmt.Errorf("arena: release storage: %w", err)
	}
	return nil
}

// Initialized reports whether the arena is between Init and Teardown.
func (a *Arena) Initialized() bool {
	return a.state == stateInitialized
}

// Capacity returns the number of cells.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Allocate grants n contiguous zeroed cells and returns the first address.
//
// The smallest free segment that fits is chosen; the scan stops at an exact
// fit, and equal candidates resolve to the lowest address. The block is
// carved from the low end of the chosen segment.
func (a *Arena) Allocate(n int) (int, error) {
	if a.state != stateInitialized {
		return 0, ErrNotInitialized
	}
	if n <= 0 || n > a.capacity {
		return 0, fmt.Errorf("%w: n=%d capacity=%d", ErrInvalidSize, n, a.capacity)
	}

	best := a.free.bestFit(n)
	if best == nilIdx {
		a.stats.FailedAllocs++
		return 0, fmt.Errorf("%w: n=%d free=%d", ErrOutOfSpace, n, a.free.total())
	}

	start, exact := a.free.take(best, n)
	if exact {
		a.stats.ExactFits++
	} else {
		a.stats.Splits++
	}
	a.stats.Allocs++

	clear(a.cells[start : start+n])
	if a.dt != nil {
		a.dt.Add(start, n)
	}
	return start, nil
}

// Free returns [start, start+length) to the free list and coalesces.
//
// The range must be exactly a block previously returned by Allocate. Ranges
// that overlap free cells are rejected with ErrDoubleFree. A range spanning
// two live blocks, or only part of one, cannot be detected and is accepted.
func (a *Arena) Free(start, length int) error {
	if a.state != stateInitialized {
		return ErrNotInitialized
	}
	end, err := bounds.CheckRange(a.capacity, start, length)
	switch {
	case errors.Is(err, bounds.ErrSize):
		return fmt.Errorf("%w: length=%d", ErrInvalidSize, length)
	case err != nil:
		return fmt.Errorf("%w: free [%d,+%d)", ErrOutOfBounds, start, length)
	}
	if a.free.overlaps(start, end) {
		return fmt.Errorf("%w: [%d,%d)", ErrDoubleFree, start, end)
	}

	a.free.insert(start, length)
	a.stats.Merges += a.free.coalesce()
	a.stats.Frees++
	return nil
}

// IsAllocated reports whether addr is inside a live allocation. It is false
// for out-of-range addresses and on an uninitialized arena.
//
// Cost is linear in the number of free segments.
func (a *Arena) IsAllocated(addr int) bool {
	if a.state != stateInitialized || !bounds.In(a.capacity, addr) {
		return false
	}
	return !a.free.covers(addr)
}

// FreeCells returns the total length of all free segments.
func (a *Arena) FreeCells() int {
	if a.state != stateInitialized {
		return 0
	}
	return a.free.total()
}

// FreeSegments returns a copy of the free list in ascending order.
func (a *Arena) FreeSegments() []Segment {
	if a.state != stateInitialized {
		return nil
	}
	return a.free.segments()
}

// Stats returns the counters accumulated since Init.
func (a *Arena) Stats() Stats {
	return a.stats
}

// CheckInvariants verifies that the free list is sorted, disjoint,
// non-adjacent and inside the arena.
func (a *Arena) CheckInvariants() error {
	if a.state != stateInitialized {
		return ErrNotInitialized
	}
	return a.free.check(a.capacity)
}
