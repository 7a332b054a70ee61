package interp

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/cellvm/arena"
	"github.com/joshuapare/cellvm/internal/logger"
	"github.com/joshuapare/cellvm/registry"
)

// Options configures an Interpreter. A nil *Options means defaults.
type Options struct {
	// Logger receives per-command debug records and failing-line warnings.
	// Defaults to logger.L.
	Logger *slog.Logger

	// Diagnostics receives one "line N: ..." record per failing line in Run.
	// Defaults to io.Discard.
	Diagnostics io.Writer

	// Encoding names the script encoding for Run when no BOM is present.
	// Empty means UTF-8.
	Encoding string

	// Strict makes Run stop at the first failing line.
	Strict bool

	// MaxArrays caps the number of live arrays. 0 means no cap.
	MaxArrays int
}

// Interpreter executes commands against a Memory. It owns the memory's
// lifecycle: New initializes it and Close tears it down.
//
// NOT thread-safe. Wrap the Memory with arena.Synchronized if other
// goroutines inspect it while scripts run.
type Interpreter struct {
	mem    arena.Memory
	vars   *registry.Registry
	out    io.Writer
	diag   io.Writer
	log    *slog.Logger
	enc    string
	strict bool
	closed bool
}

// New initializes mem and returns an interpreter writing program output to out.
func New(mem arena.Memory, out io.Writer, opts *Options) (*Interpreter, error) {
	if opts == nil {
		opts = &Options{}
	}
	if out == nil {
		out = io.Discard
	}
	if err := mem.Init(); err != nil {
		return nil, fmt.Errorf("init memory: %w", err)
	}

	in := &Interpreter{
		mem:    mem,
		vars:   registry.New(opts.MaxArrays),
		out:    out,
		diag:   opts.Diagnostics,
		log:    opts.Logger,
		enc:    opts.Encoding,
		strict: opts.Strict,
	}
	if in.diag == nil {
		in.diag = io.Discard
	}
	if in.log == nil {
		in.log = logger.L
	}
	in.log.Debug("memory initialized", "cells", mem.Capacity())
	return in, nil
}

// Memory returns the memory the interpreter drives.
func (in *Interpreter) Memory() arena.Memory { return in.mem }

// Arrays returns the live array names in ascending order.
func (in *Interpreter) Arrays() []string { return in.vars.Names() }

// Lookup returns the block bound to name.
func (in *Interpreter) Lookup(name string) (registry.Block, error) {
	return in.vars.Lookup(name)
}

// Close frees every live array in name order and tears the memory down.
// Calling Close again is a no-op.
func (in *Interpreter) Close() error {
	if in.closed {
		return nil
	}
	in.closed = true

	for _, name := range in.vars.Names() {
		b, _ := in.vars.Delete(name)
		if err := in.mem.Free(b.Start, b.Len); err != nil {
			in.log.Warn("free on close failed", "array", name, "error", err)
		}
	}
	if err := in.mem.Teardown(); err != nil {
		return fmt.Errorf("teardown memory: %w", err)
	}
	in.log.Debug("memory torn down")
	return nil
}
