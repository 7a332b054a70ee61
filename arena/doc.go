// Package arena provides a fixed-capacity cell memory with an explicit
// free-list allocator.
//
// # Overview
//
// An Arena holds N int32 cells. Blocks of cells are handed out by Allocate and
// returned by Free; the arena keeps no record of live blocks. Instead it keeps
// a free list of segments, and a cell is live exactly when it is in range and
// not covered by a free segment. Read, Write, Increment and Decrement check
// bounds and liveness before touching a cell.
//
// # Lifecycle
//
//	a, err := arena.New(100, nil)
//	if err != nil {
//	    return err
//	}
//	if err := a.Init(); err != nil {
//	    return err
//	}
//	defer a.Teardown()
//
//	start, err := a.Allocate(10)
//	if err != nil {
//	    return err
//	}
//	_ = a.Write(start, 42)
//	v, _ := a.Increment(start) // 43
//
//	// The caller supplies the length again on release.
//	_ = a.Free(start, 10)
//
// Every operation except Init fails with ErrNotInitialized before Init and
// after Teardown. Init on a live arena fails with ErrAlreadyInitialized.
//
// # Allocation Policy
//
// Allocate performs a best-fit scan over the whole free list:
//
//   - the smallest segment with length >= n wins
//   - the scan stops at the first exact fit
//   - among equal lengths, the lowest address wins
//
// The block is carved from the low end of the chosen segment and zeroed.
//
// # Free List
//
// Segments are stored as records in a slice, chained by prev/next indices in
// ascending address order. Released records are recycled, so allocate/free
// churn does not allocate. After every Free the list is coalesced: any two
// consecutive segments that touch or overlap are merged, restoring the
// invariant that segments are sorted, disjoint and never adjacent.
//
// Free rejects ranges that overlap a free segment (ErrDoubleFree). It cannot
// tell a partial release or a range spanning two blocks from a correct one;
// lengths are the caller's responsibility.
//
// # Errors
//
// All failures are reported as wrapped package sentinels (ErrOutOfBounds,
// ErrNotAllocated, ErrInvalidSize, ErrOutOfSpace, ErrDoubleFree, ...). Every
// check runs before any mutation, so a failed call leaves the arena as it was.
// The package never logs.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Use Synchronized to serialize access
// from several goroutines.
package arena
