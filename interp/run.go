package interp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/cellvm/lang"
)

// Summary counts what Run did with a script.
type Summary struct {
	Lines    int `json:"lines"    yaml:"lines"`    // Lines read, including blank and comment lines
	Executed int `json:"executed" yaml:"executed"` // Commands that succeeded
	Failed   int `json:"failed"   yaml:"failed"`   // Lines that failed to parse or execute
}

// Run executes a script line by line.
//
// Input is decoded to UTF-8 first: a byte order mark selects UTF-8 or UTF-16,
// otherwise Options.Encoding applies. A failing line is reported to the
// diagnostics writer and skipped, unless Options.Strict is set, in which case
// Run returns the line's error. Lines longer than lang.MaxLineSize fail with
// lang.ErrLineTooLong. ctx is checked between lines.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) (Summary, error) {
	var sum Summary

	src, err := lang.NewReader(r, in.enc)
	if err != nil {
		return sum, err
	}
	br := bufio.NewReaderSize(src, lang.MaxLineSize)

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line, tooLong, readErr := readLine(br)
		if readErr != nil && readErr != io.EOF {
			return sum, fmt.Errorf("reading script: %w", readErr)
		}
		if readErr == io.EOF && line == "" && !tooLong {
			break
		}
		sum.Lines++

		var err error
		skip := false
		if tooLong {
			err = fmt.Errorf("%w: more than %d bytes", lang.ErrLineTooLong, lang.MaxLineSize)
		} else {
			var cmd lang.Command
			cmd, err = lang.Parse(line)
			switch {
			case errors.Is(err, lang.ErrEmpty):
				skip = true
			case err == nil:
				err = in.Exec(cmd)
			}
		}

		switch {
		case skip:
		case err != nil:
			sum.Failed++
			in.log.Warn("line failed", "line", sum.Lines, "error", err)
			fmt.Fprintf(in.diag, "line %d: %s (%v)\n", sum.Lines, Describe(err), err)
			if in.strict {
				return sum, fmt.Errorf("line %d: %w", sum.Lines, err)
			}
		default:
			sum.Executed++
		}

		if readErr == io.EOF {
			break
		}
	}

	in.log.Info("script done", "lines", sum.Lines, "executed", sum.Executed, "failed", sum.Failed)
	return sum, nil
}

// readLine returns the next line without its line terminator. A line that
// does not fit in br's buffer is drained up to and including its newline and
// reported with tooLong set. err is io.EOF on the final line.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	frag, err := br.ReadSlice('\n')
	for err == bufio.ErrBufferFull {
		tooLong = true
		_, err = br.ReadSlice('\n')
	}
	if tooLong {
		return "", true, err
	}
	frag = bytes.TrimSuffix(frag, []byte("\n"))
	frag = bytes.TrimSuffix(frag, []byte("\r"))
	return string(frag), false, err
}
