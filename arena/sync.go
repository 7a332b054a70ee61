package arena

import "sync"

// Synchronized returns a Memory that serializes every call to m under a
// single mutex. Free-list mutation is not safe under concurrent access, so a
// multi-goroutine host must route all calls for one arena through it.
//
// Composite sequences (allocate, then write) are still separate critical
// sections; callers that need them atomic must hold their own lock.
func Synchronized(m Memory) Memory {
	if s, ok := m.(*syncMemory); ok {
		return s
	}
	return &syncMemory{m: m}
}

type syncMemory struct {
	mu sync.Mutex
	m  Memory
}

func (s *syncMemory) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Init()
}

func (s *syncMemory) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Teardown()
}

func (s *syncMemory) Allocate(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Allocate(n)
}

func (s *syncMemory) Free(start, length int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Free(start, length)
}

func (s *syncMemory) Read(addr int) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Read(addr)
}

func (s *syncMemory) Write(addr int, value int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Write(addr, value)
}

func (s *syncMemory) Increment(addr int) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Increment(addr)
}

func (s *syncMemory) Decrement(addr int) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Decrement(addr)
}

func (s *syncMemory) IsAllocated(addr int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.IsAllocated(addr)
}

func (s *syncMemory) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Capacity()
}

func (s *syncMemory) FreeCells() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.FreeCells()
}

func (s *syncMemory) FreeSegments() []Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.FreeSegments()
}
