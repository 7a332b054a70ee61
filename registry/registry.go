// Package registry maps array names to the arena blocks that back them.
//
// The registry is the only place that remembers block lengths: the arena
// needs the length echoed back on release, and the registry is where the
// interpreter gets it from. It also checks indices against the declared
// length before an address ever reaches the arena.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrExists indicates Create with a name that is already bound.
	ErrExists = errors.New("registry: array already exists")

	// ErrUnknown indicates a name that is not bound.
	ErrUnknown = errors.New("registry: array does not exist")

	// ErrIndex indicates an index outside the array's declared length.
	ErrIndex = errors.New("registry: index out of range")

	// ErrFull indicates that the name limit has been reached.
	ErrFull = errors.New("registry: too many arrays")
)

// Block is the arena range bound to a name.
type Block struct {
	Start int `json:"start" yaml:"start"`
	Len   int `json:"len"   yaml:"len"`
}

// Registry binds names to blocks. The zero value is not usable; call New.
//
// NOT thread-safe.
type Registry struct {
	blocks map[string]Block
	limit  int
}

// New creates an empty registry. limit caps the number of simultaneously
// bound names; 0 means no cap.
func New(limit int) *Registry {
	return &Registry{
		blocks: make(map[string]Block),
		limit:  limit,
	}
}

// Create binds name to b.
func (r *Registry) Create(name string, b Block) error {
	if _, ok := r.blocks[name]; ok {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	if r.limit > 0 && len(r.blocks) >= r.limit {
		return fmt.Errorf("%w: limit %d", ErrFull, r.limit)
	}
	r.blocks[name] = b
	return nil
}

// Lookup returns the block bound to name.
func (r *Registry) Lookup(name string) (Block, error) {
	b, ok := r.blocks[name]
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return b, nil
}

// Delete unbinds name and returns the block it was bound to.
func (r *Registry) Delete(name string) (Block, error) {
	b, ok := r.blocks[name]
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	delete(r.blocks, name)
	return b, nil
}

// Resolve returns the arena address of name[index].
func (r *Registry) Resolve(name string, index int) (int, error) {
	b, err := r.Lookup(name)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= b.Len {
		return 0, fmt.Errorf("%w: %s[%d] with length %d", ErrIndex, name, index, b.Len)
	}
	return b.Start + index, nil
}

// Names returns the bound names in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.blocks))
	for name := range r.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound names.
func (r *Registry) Len() int {
	return len(r.blocks)
}
