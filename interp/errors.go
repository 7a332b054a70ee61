package interp

import (
	"errors"

	"github.com/joshuapare/cellvm/arena"
	"github.com/joshuapare/cellvm/lang"
	"github.com/joshuapare/cellvm/registry"
)

var (
	// ErrLengthMismatch indicates a logic operation between arrays of different length.
	ErrLengthMismatch = errors.New("interp: arrays differ in length")

	// ErrClosed indicates use of an interpreter after Close.
	ErrClosed = errors.New("interp: interpreter closed")
)

// Describe returns the short diagnostic printed for err, in the wording
// script authors see on a failing line.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, arena.ErrOutOfSpace):
		return "not enough memory"
	case errors.Is(err, registry.ErrUnknown):
		return "variable does not exist"
	case errors.Is(err, registry.ErrExists):
		return "variable already exists"
	case errors.Is(err, registry.ErrFull):
		return "too many variables"
	case errors.Is(err, ErrLengthMismatch):
		return "logic operation between sequences of different length"
	case errors.Is(err, registry.ErrIndex),
		errors.Is(err, arena.ErrOutOfBounds),
		errors.Is(err, arena.ErrNotAllocated),
		errors.Is(err, arena.ErrDoubleFree):
		return "wrong memory access"
	case errors.Is(err, arena.ErrInvalidSize):
		return "invalid size"
	case errors.Is(err, lang.ErrLineTooLong):
		return "line too long"
	case errors.Is(err, lang.ErrUnknownOp),
		errors.Is(err, lang.ErrArity),
		errors.Is(err, lang.ErrBadNumber),
		errors.Is(err, lang.ErrBadName):
		return "invalid line"
	case errors.Is(err, arena.ErrNotInitialized), errors.Is(err, ErrClosed):
		return "memory not initialized"
	default:
		return "error"
	}
}
