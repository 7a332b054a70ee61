//go:build linux || darwin

package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapCells backs n cells with a private anonymous mapping.
func mapCells(n int) ([]int32, func() error, error) {
	size, err := storageBytes(n)
	if err != nil {
		return nil, nil, err
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("arena: map %d cells: %w", n, err)
	}
	cells := unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), n)
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return cells, release, nil
}
