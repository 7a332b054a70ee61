package arena

import "fmt"

// nilIdx terminates the prev/next chain of segment records.
const nilIdx = -1

// Segment is a maximal run of free cells.
type Segment struct {
	Start int `json:"start" yaml:"start"`
	Len   int `json:"len"   yaml:"len"`
}

// End returns the exclusive end of the segment.
func (s Segment) End() int { return s.Start + s.Len }

// segRec is one free-list record. Records live in freeList.recs and are
// chained through prev/next indices in ascending start order.
type segRec struct {
	start  int
	length int
	prev   int
	next   int
}

func (r *segRec) end() int { return r.start + r.length }

// freeList is a doubly linked list of free segments stored in a slice.
//
// Invariants (between public arena calls):
//   - the chain from head is sorted ascending by start
//   - segments are pairwise disjoint and never adjacent
//   - every record reachable from head has length > 0
//
// Unlinked records are recycled through spare, so steady-state allocate/free
// churn does not grow recs.
type freeList struct {
	recs  []segRec
	spare []int
	head  int
	count int
}

// reset installs a single segment covering [0, capacity).
func (fl *freeList) reset(capacity int) {
	fl.recs = fl.recs[:0]
	fl.spare = fl.spare[:0]
	fl.head = nilIdx
	fl.count = 0
	fl.link(fl.newRec(0, capacity), nilIdx)
}

// clear drops all records and their backing storage.
func (fl *freeList) clear() {
	fl.recs = nil
	fl.spare = nil
	fl.head = nilIdx
	fl.count = 0
}

func (fl *freeList) newRec(start, length int) int {
	rec := segRec{start: start, length: length, prev: nilIdx, next: nilIdx}
	if n := len(fl.spare); n > 0 {
		i := fl.spare[n-1]
		fl.spare = fl.spare[:n-1]
		fl.recs[i] = rec
		return i
	}
	fl.recs = append(fl.recs, rec)
	return len(fl.recs) - 1
}

// link inserts record i directly after record after (nilIdx = at head).
func (fl *freeList) link(i, after int) {
	r := &fl.recs[i]
	r.prev = after
	if after == nilIdx {
		r.next = fl.head
		fl.head = i
	} else {
		r.next = fl.recs[after].next
		fl.recs[after].next = i
	}
	if r.next != nilIdx {
		fl.recs[r.next].prev = i
	}
	fl.count++
}

// unlink removes record i from the chain and recycles it.
func (fl *freeList) unlink(i int) {
	r := &fl.recs[i]
	if r.prev == nilIdx {
		fl.head = r.next
	} else {
		fl.recs[r.prev].next = r.next
	}
	if r.next != nilIdx {
		fl.recs[r.next].prev = r.prev
	}
	r.prev, r.next, r.length = nilIdx, nilIdx, 0
	fl.spare = append(fl.spare, i)
	fl.count--
}

// bestFit returns the record of the smallest segment with length >= n, or
// nilIdx. The scan stops at the first exact fit; among equal lengths the
// lowest start wins because only a strictly smaller length replaces the
// current best.
func (fl *freeList) bestFit(n int) int {
	best := nilIdx
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		r := &fl.recs[i]
		if r.length < n {
			continue
		}
		if best == nilIdx || r.length < fl.recs[best].length {
			best = i
			if r.length == n {
				break
			}
		}
	}
	return best
}

// take carves n cells from the low end of record i and returns their start.
// An exactly consumed record is unlinked. exact reports which case applied.
func (fl *freeList) take(i, n int) (start int, exact bool) {
	r := &fl.recs[i]
	start = r.start
	if r.length == n {
		fl.unlink(i)
		return start, true
	}
	r.start += n
	r.length -= n
	return start, false
}

// insert adds [start, start+length) in sorted position without merging.
func (fl *freeList) insert(start, length int) int {
	after := nilIdx
	for i := fl.head; i != nilIdx && fl.recs[i].start < start; i = fl.recs[i].next {
		after = i
	}
	idx := fl.newRec(start, length)
	fl.link(idx, after)
	return idx
}

// coalesce walks the chain once, merging each pair where the first segment's
// end reaches the second's start. It returns the number of merges. Running it
// on an already coalesced list is a no-op.
func (fl *freeList) coalesce() int {
	merges := 0
	cur := fl.head
	for cur != nilIdx {
		next := fl.recs[cur].next
		if next == nilIdx {
			break
		}
		c, n := &fl.recs[cur], &fl.recs[next]
		if c.end() < n.start {
			cur = next
			continue
		}
		if n.end() > c.end() {
			c.length = n.end() - c.start
		}
		fl.unlink(next)
		merges++
	}
	return merges
}

// covers reports whether addr lies inside any free segment.
func (fl *freeList) covers(addr int) bool {
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		r := &fl.recs[i]
		if addr < r.start {
			return false
		}
		if addr < r.end() {
			return true
		}
	}
	return false
}

// overlaps reports whether [start, end) shares a cell with any free segment.
func (fl *freeList) overlaps(start, end int) bool {
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		r := &fl.recs[i]
		if r.start >= end {
			return false
		}
		if start < r.end() {
			return true
		}
	}
	return false
}

// total returns the number of free cells.
func (fl *freeList) total() int {
	sum := 0
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		sum += fl.recs[i].length
	}
	return sum
}

// segments returns a copy of the chain in order.
func (fl *freeList) segments() []Segment {
	out := make([]Segment, 0, fl.count)
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		out = append(out, Segment{Start: fl.recs[i].start, Len: fl.recs[i].length})
	}
	return out
}

// check verifies ordering, disjointness, non-adjacency, bounds and link
// consistency against capacity.
func (fl *freeList) check(capacity int) error {
	prev := nilIdx
	seen := 0
	for i := fl.head; i != nilIdx; i = fl.recs[i].next {
		if seen > len(fl.recs) {
			return fmt.Errorf("%w: cycle in chain", ErrCorrupt)
		}
		r := &fl.recs[i]
		if r.prev != prev {
			return fmt.Errorf("%w: record %d prev=%d want %d", ErrCorrupt, i, r.prev, prev)
		}
		if r.length <= 0 {
			return fmt.Errorf("%w: segment at %d has length %d", ErrCorrupt, r.start, r.length)
		}
		if r.start < 0 || r.end() > capacity {
			return fmt.Errorf("%w: segment [%d,%d) outside [0,%d)", ErrCorrupt, r.start, r.end(), capacity)
		}
		if prev != nilIdx {
			p := &fl.recs[prev]
			if p.end() >= r.start {
				return fmt.Errorf("%w: segments [%d,%d) and [%d,%d) overlap or touch",
					ErrCorrupt, p.start, p.end(), r.start, r.end())
			}
		}
		prev = i
		seen++
	}
	if seen != fl.count {
		return fmt.Errorf("%w: count=%d but chain has %d", ErrCorrupt, fl.count, seen)
	}
	return nil
}
