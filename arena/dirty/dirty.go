// Package dirty tracks which arena cells were modified.
//
// The tracker keeps an append-only list of touched cell ranges and only sorts
// and merges them when asked, so recording a write stays a slice append.
// Ranges can optionally be widened to fixed-size blocks, which is how the
// CLI reports modified memory "lines" instead of single cells.
package dirty

import (
	"sort"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// Range is a run of touched cells.
type Range struct {
	Off int `json:"off" yaml:"off"` // First cell
	Len int `json:"len" yaml:"len"` // Number of cells
}

// End returns the exclusive end of the range.
func (r Range) End() int { return r.Off + r.Len }

// Tracker accumulates dirty ranges.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges    []Range
	blockSize int
}

// NewTracker creates a tracker that reports ranges aligned to blockSize cells.
// A blockSize below 1 is treated as 1 (exact cell ranges).
func NewTracker(blockSize int) *Tracker {
	if blockSize < 1 {
		blockSize = 1
	}
	return &Tracker{
		ranges:    make([]Range, 0, defaultRangeCapacity),
		blockSize: blockSize,
	}
}

// Add records that length cells starting at off were modified.
// Empty ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: off, Len: length})
}

// Len returns the number of raw, uncoalesced ranges recorded.
func (t *Tracker) Len() int {
	return len(t.ranges)
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the recorded ranges block-aligned, sorted and merged.
// The tracker itself is left untouched.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// coalesce aligns all ranges to the block size, sorts them, and merges
// overlapping or adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	bs := t.blockSize
	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / bs) * bs
		end := r.End()
		if end%bs != 0 {
			end = ((end / bs) + 1) * bs
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			if next.End() > current.End() {
				current.Len = next.End() - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
