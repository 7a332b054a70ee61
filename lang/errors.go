package lang

import "errors"

var (
	// ErrEmpty indicates a blank or comment-only line. Callers usually skip it.
	ErrEmpty = errors.New("lang: empty line")

	// ErrUnknownOp indicates an operator that is not part of the language.
	ErrUnknownOp = errors.New("lang: unknown operator")

	// ErrArity indicates a missing or surplus parameter.
	ErrArity = errors.New("lang: wrong number of parameters")

	// ErrBadNumber indicates a numeric parameter that is not a base-10 int32.
	ErrBadNumber = errors.New("lang: invalid number")

	// ErrBadName indicates an array name that is not an identifier.
	ErrBadName = errors.New("lang: invalid array name")

	// ErrLineTooLong indicates a line longer than MaxLineSize.
	ErrLineTooLong = errors.New("lang: line too long")

	// ErrUnsupportedEncoding indicates an unknown input encoding name.
	ErrUnsupportedEncoding = errors.New("lang: unsupported encoding")
)
