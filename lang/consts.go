package lang

const (
	// ============================================================================
	// Line Structure
	// ============================================================================

	// CommentPrefix marks a comment line
	CommentPrefix = "#"

	// CR is the carriage return left behind by CRLF input
	CR = "\r"

	// MaxFields is the largest number of whitespace-separated fields on a line
	MaxFields = 3

	// ============================================================================
	// Input Encodings
	// ============================================================================

	// EncodingUTF8 is the default script encoding
	EncodingUTF8 = "UTF-8"

	// EncodingUTF16LE selects little-endian UTF-16 input
	EncodingUTF16LE = "UTF-16LE"

	// EncodingWindows1252 selects Windows-1252 (Latin-1 superset) input
	EncodingWindows1252 = "WINDOWS-1252"

	// ============================================================================
	// Line Limits
	// ============================================================================

	// MaxLineSize bounds a single script line, terminator included
	MaxLineSize = 64 * 1024
)
