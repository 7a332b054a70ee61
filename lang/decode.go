package lang

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so that it yields UTF-8 script text.
//
// A leading byte order mark (UTF-8, UTF-16LE or UTF-16BE) always wins and is
// stripped. Without one, enc selects the decoding: "" or UTF-8, UTF-16LE, or
// WINDOWS-1252 (case-insensitive).
func NewReader(r io.Reader, enc string) (io.Reader, error) {
	fallback, err := lookupEncoding(enc)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder())), nil
}

func lookupEncoding(enc string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.TrimSpace(enc)) {
	case "", EncodingUTF8, "UTF8":
		return unicode.UTF8, nil
	case EncodingUTF16LE, "UTF16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case EncodingWindows1252, "CP1252", "LATIN1":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}
