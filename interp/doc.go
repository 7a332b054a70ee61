// Package interp runs cellvm scripts against an arena.Memory.
//
// # Overview
//
// An Interpreter binds three things: the Memory that holds cell values, a
// registry that maps array names to the blocks backing them, and the writer
// that Pri and Pra print to. Scripts are parsed by package lang one line at
// a time.
//
//	mem, _ := arena.New(100, nil)
//	in, _ := interp.New(mem, os.Stdout, nil)
//	defer in.Close()
//	sum, err := in.Run(ctx, script)
//
// # Failing Lines
//
// A line that fails to parse or execute changes nothing. Run reports it as
// "line N: <message> (<error>)" to Options.Diagnostics, where message is
// Describe(err), and moves on to the next line.
//
// # Arithmetic
//
// Add, Sub and Mul operate on the first cell of each array and wrap at 32
// bits. And and Xor operate cell by cell on arrays of equal length and
// store the low bit of the result.
package interp
