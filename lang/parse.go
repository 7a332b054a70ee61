package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one parsed statement.
type Command struct {
	Op    Op
	Name  string // Target array
	Other string // Second array for Add/Sub/Mul/And/Xor
	Arg   int32  // Length, value or index for Mal/Ass/Inc/Dec/Pri
}

// String renders the command back to source form.
func (c Command) String() string {
	switch c.Op.argKind() {
	case argNumber:
		return fmt.Sprintf("%s %s %d", c.Op, c.Name, c.Arg)
	case argName:
		return fmt.Sprintf("%s %s %s", c.Op, c.Name, c.Other)
	default:
		return fmt.Sprintf("%s %s", c.Op, c.Name)
	}
}

// Parse parses a single line of the form "Op name [arg]".
//
// Fields are separated by runs of spaces or tabs; a trailing carriage return
// is ignored. Blank lines and lines starting with "#" yield ErrEmpty.
func Parse(line string) (Command, error) {
	line = strings.TrimRight(line, CR)
	trim := strings.TrimSpace(line)
	if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
		return Command{}, ErrEmpty
	}

	fields := strings.Fields(trim)
	op, ok := LookupOp(fields[0])
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownOp, fields[0])
	}
	if len(fields) != op.Fields() {
		return Command{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, op, op.Fields()-1, len(fields)-1)
	}

	cmd := Command{Op: op, Name: fields[1]}
	if !IsName(cmd.Name) {
		return Command{}, fmt.Errorf("%w: %q", ErrBadName, cmd.Name)
	}

	switch op.argKind() {
	case argNumber:
		n, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrBadNumber, fields[2])
		}
		cmd.Arg = int32(n)
	case argName:
		if !IsName(fields[2]) {
			return Command{}, fmt.Errorf("%w: %q", ErrBadName, fields[2])
		}
		cmd.Other = fields[2]
	}
	return cmd, nil
}

// IsName reports whether s is a valid array name: a letter or underscore
// followed by letters, digits or underscores.
func IsName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
