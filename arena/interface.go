package arena

// DirtyTracker receives the cell ranges an arena modifies.
// *dirty.Tracker satisfies it.
type DirtyTracker interface {
	// Add marks length cells starting at off as modified.
	Add(off, length int)
}

// Memory is the surface the interpreter drives. *Arena implements it, and
// Synchronized wraps any Memory for use from several goroutines.
type Memory interface {
	Init() error
	Teardown() error

	Allocate(n int) (int, error)
	Free(start, length int) error

	Read(addr int) (int32, error)
	Write(addr int, value int32) error
	Increment(addr int) (int32, error)
	Decrement(addr int) (int32, error)

	IsAllocated(addr int) bool
	Capacity() int
	FreeCells() int
	FreeSegments() []Segment
}

var _ Memory = (*Arena)(nil)
