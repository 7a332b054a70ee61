package interp

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/cellvm/arena"
)

// Array is one live array in a Snapshot.
type Array struct {
	Name   string  `json:"name"   yaml:"name"`
	Start  int     `json:"start"  yaml:"start"`
	Len    int     `json:"len"    yaml:"len"`
	Values []int32 `json:"values" yaml:"values,flow"`
}

// Snapshot is a point-in-time view of the memory and the arrays living in it.
type Snapshot struct {
	Capacity  int             `json:"capacity"   yaml:"capacity"`
	FreeCells int             `json:"free_cells" yaml:"free_cells"`
	Free      []arena.Segment `json:"free"       yaml:"free"`
	Arrays    []Array         `json:"arrays"     yaml:"arrays"`
}

// Snapshot captures the current memory layout and array contents.
func (in *Interpreter) Snapshot() (Snapshot, error) {
	if in.closed {
		return Snapshot{}, ErrClosed
	}

	s := Snapshot{
		Capacity:  in.mem.Capacity(),
		FreeCells: in.mem.FreeCells(),
		Free:      in.mem.FreeSegments(),
		Arrays:    make([]Array, 0, in.vars.Len()),
	}
	for _, name := range in.vars.Names() {
		b, _ := in.vars.Lookup(name)
		vals, err := in.values(b)
		if err != nil {
			return Snapshot{}, err
		}
		s.Arrays = append(s.Arrays, Array{Name: name, Start: b.Start, Len: b.Len, Values: vals})
	}
	return s, nil
}

// JSON renders the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAML renders the snapshot as a YAML document.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
