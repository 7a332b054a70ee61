package arena

import (
	"fmt"

	"github.com/joshuapare/cellvm/internal/bounds"
)

// checkLive validates state, bounds and liveness of addr, in that order.
func (a *Arena) checkLive(addr int) error {
	if a.state != stateInitialized {
		return ErrNotInitialized
	}
	if !bounds.In(a.capacity, addr) {
		return fmt.Errorf("%w: addr=%d capacity=%d", ErrOutOfBounds, addr, a.capacity)
	}
	if a.free.covers(addr) {
		return fmt.Errorf("%w: addr=%d", ErrNotAllocated, addr)
	}
	return nil
}

// Read returns the value of a live cell.
func (a *Arena) Read(addr int) (int32, error) {
	if err := a.checkLive(addr); err != nil {
		return 0, err
	}
	a.stats.Reads++
	return a.cells[addr], nil
}

// Write replaces the value of a live cell.
func (a *Arena) Write(addr int, value int32) error {
	if err := a.checkLive(addr); err != nil {
		return err
	}
	a.cells[addr] = value
	a.touch(addr)
	return nil
}

// Increment adds one to a live cell, wrapping at the int32 limits, and
// returns the new value.
func (a *Arena) Increment(addr int) (int32, error) {
	if err := a.checkLive(addr); err != nil {
		return 0, err
	}
	a.cells[addr]++
	a.touch(addr)
	return a.cells[addr], nil
}

// Decrement subtracts one from a live cell, wrapping at the int32 limits,
// and returns the new value.
func (a *Arena) Decrement(addr int) (int32, error) {
	if err := a.checkLive(addr); err != nil {
		return 0, err
	}
	a.cells[addr]--
	a.touch(addr)
	return a.cells[addr], nil
}

func (a *Arena) touch(addr int) {
	a.stats.Writes++
	if a.dt != nil {
		a.dt.Add(addr, 1)
	}
}
