package arena

import "errors"

var (
	// ErrNotInitialized indicates an operation on an arena that has not been
	// initialized, or has been torn down.
	ErrNotInitialized = errors.New("arena: not initialized")

	// ErrAlreadyInitialized indicates Init on an arena that is already live.
	ErrAlreadyInitialized = errors.New("arena: already initialized")

	// ErrOutOfBounds indicates an address or range outside [0, capacity).
	ErrOutOfBounds = errors.New("arena: address out of bounds")

	// ErrNotAllocated indicates access to a cell that lies in a free segment.
	ErrNotAllocated = errors.New("arena: cell not allocated")

	// ErrInvalidSize indicates a requested or released length outside (0, capacity].
	ErrInvalidSize = errors.New("arena: invalid size")

	// ErrOutOfSpace indicates that no free segment is large enough for a request.
	ErrOutOfSpace = errors.New("arena: no free segment large enough")

	// ErrDoubleFree indicates a release that overlaps cells which are already free.
	ErrDoubleFree = errors.New("arena: range already free")

	// ErrCorrupt indicates the free list violates its ordering invariants.
	// Only CheckInvariants reports it.
	ErrCorrupt = errors.New("arena: free list corrupt")
)
