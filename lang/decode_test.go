package lang

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeUTF16LE(s string, withBOM bool) []byte {
	var buf bytes.Buffer
	if withBOM {
		buf.Write([]byte{0xFF, 0xFE})
	}
	for _, w := range utf16.Encode([]rune(s)) {
		_ = binary.Write(&buf, binary.LittleEndian, w)
	}
	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte, enc string) string {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data), enc)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewReader_UTF8(t *testing.T) {
	assert.Equal(t, "Mal x 1\n", decodeAll(t, []byte("Mal x 1\n"), ""))
	assert.Equal(t, "Mal x 1\n", decodeAll(t, []byte("\xEF\xBB\xBFMal x 1\n"), "utf-8"), "BOM stripped")
}

func TestNewReader_UTF16(t *testing.T) {
	src := "Mal x 1\r\nPra x\r\n"

	assert.Equal(t, src, decodeAll(t, encodeUTF16LE(src, true), ""), "BOM detected without a hint")
	assert.Equal(t, src, decodeAll(t, encodeUTF16LE(src, false), EncodingUTF16LE))
}

func TestNewReader_Windows1252(t *testing.T) {
	// 0xE9 is 'é' in Windows-1252.
	assert.Equal(t, "# café\n", decodeAll(t, []byte("# caf\xE9\n"), "windows-1252"))
}

func TestNewReader_UnknownEncoding(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil), "EBCDIC")
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}
