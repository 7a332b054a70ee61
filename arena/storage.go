package arena

import (
	"fmt"

	"github.com/joshuapare/cellvm/internal/bounds"
)

// cellSize is the width of one cell in bytes.
const cellSize = 4

// heapCells allocates cells on the Go heap. Release is a no-op; the slice is
// dropped by Teardown and collected normally.
func heapCells(n int) ([]int32, func() error, error) {
	if _, err := storageBytes(n); err != nil {
		return nil, nil, err
	}
	return make([]int32, n), func() error { return nil }, nil
}

// storageBytes returns the byte size of n cells, rejecting counts outside
// [1, MaxCapacity] before any allocation or mapping is attempted.
func storageBytes(n int) (int, error) {
	if n <= 0 || n > MaxCapacity {
		return 0, fmt.Errorf("%w: %d cells, max %d", ErrInvalidSize, n, MaxCapacity)
	}
	size, ok := bounds.MulOverflowSafe(n, cellSize)
	if !ok {
		return 0, fmt.Errorf("%w: %d cells overflow the byte size", ErrInvalidSize, n)
	}
	return size, nil
}
