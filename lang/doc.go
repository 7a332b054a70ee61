// Package lang parses the cellvm array language.
//
// A script is a sequence of lines, one statement per line:
//
//	Mal x 5     allocate array x of 5 cells
//	Ass x 3     x[0] = 3
//	Inc x 2     x[2]++
//	Dec x 2     x[2]--
//	Pri x 2     print x[2]
//	Add x y     x[0] += y[0]
//	Sub x y     x[0] -= y[0]
//	Mul x y     x[0] *= y[0]
//	And x y     x[i] = (x[i]*y[i]) mod 2 for every i
//	Xor x y     x[i] = (x[i]+y[i]) mod 2 for every i
//	Fre x       release x
//	Pra x       print [ x[0] x[1] ... ]
//
// Parse handles one line; NewReader decodes script bytes (UTF-8, UTF-16 or
// Windows-1252) into UTF-8 before scanning. Executing statements is the
// interp package's job.
package lang
