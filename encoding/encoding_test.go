package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormResolve(t *testing.T) {
	for _, tc := range []struct {
		in   Form
		want Form
	}{
		{UTF8, UTF8},
		{UTF16BE, UTF16BE},
		{UTF16LE, UTF16LE},
		{UTF32BE, UTF32BE},
	} {
		assert.Equal(t, tc.want, tc.in.Resolve())
	}
	resolved := UTF16.Resolve()
	assert.True(t, resolved == UTF16BE || resolved == UTF16LE)
	resolved32 := UTF32.Resolve()
	assert.True(t, resolved32 == UTF32BE || resolved32 == UTF32LE)
}

func TestByteSwap(t *testing.T) {
	assert.Equal(t, uint16(0x3412), ByteSwap16(0x1234))
	assert.Equal(t, uint32(0x78563412), ByteSwap32(0x12345678))
	assert.Equal(t, uint16(0x1234), ByteSwap16(ByteSwap16(0x1234)))
}

func TestCursorUTF8IsByteOriented(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{0x41, 0xC3, 0xA9}), UTF8)
	var got []uint32
	for {
		u, ok, err := c.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, u)
	}
	assert.Equal(t, []uint32{0x41, 0xC3, 0xA9}, got)
}

func TestCursorUTF16BE(t *testing.T) {
	// "A" (0x0041) then U+1F600 surrogate pair (D83D DE00) in big-endian wire bytes.
	wire := []byte{0x00, 0x41, 0xD8, 0x3D, 0xDE, 0x00}
	c := NewCursor(bytes.NewReader(wire), UTF16BE)
	u1, ok, err := c.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(0x0041), u1)
	u2, ok, err := c.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(0xD83D), u2)
	u3, _, _ := c.Next()
	assert.Equal(t, uint32(0xDE00), u3)
}

func TestCursorUTF16LEByteSwapsVsBE(t *testing.T) {
	be := NewCursor(bytes.NewReader([]byte{0xD8, 0x3D}), UTF16BE)
	le := NewCursor(bytes.NewReader([]byte{0x3D, 0xD8}), UTF16LE)
	ube, _, _ := be.Next()
	ule, _, _ := le.Next()
	assert.Equal(t, ube, ule)
}

func TestCursorUTF32BEAndLE(t *testing.T) {
	be := NewCursor(bytes.NewReader([]byte{0x00, 0x01, 0xF6, 0x00}), UTF32BE)
	u, _, err := be.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0001F600), u)

	le := NewCursor(bytes.NewReader([]byte{0x00, 0xF6, 0x01, 0x00}), UTF32LE)
	u2, _, err := le.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0001F600), u2)
}

func TestCursorPeekDoesNotConsume(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{0x41, 0x42}), UTF8)
	p1, _, _ := c.Peek()
	p2, _, _ := c.Peek()
	assert.Equal(t, p1, p2)
	n1, _, _ := c.Next()
	assert.Equal(t, p1, n1)
	n2, _, _ := c.Next()
	assert.Equal(t, uint32(0x42), n2)
}

func TestCursorTruncatedCodeUnit(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{0x00}), UTF16BE)
	_, ok, err := c.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestCursorEOF(t *testing.T) {
	c := NewCursor(bytes.NewReader(nil), UTF8)
	_, ok, err := c.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSniffBOMs(t *testing.T) {
	for _, tc := range []struct {
		name    string
		bom     []byte
		trailer []byte
		want    Form
	}{
		{"utf8", []byte{0xEF, 0xBB, 0xBF}, []byte("X"), UTF8},
		{"utf16be", []byte{0xFE, 0xFF}, []byte{0x00, 0x41}, UTF16BE},
		// FF FE followed by non-zero bytes must not be mistaken for UTF-32LE.
		{"utf16le-not-utf32le", []byte{0xFF, 0xFE}, []byte{0x41, 0x00}, UTF16LE},
		{"utf32be", []byte{0x00, 0x00, 0xFE, 0xFF}, []byte{0x00, 0x00, 0x00, 0x41}, UTF32BE},
		{"utf32le", []byte{0xFF, 0xFE, 0x00, 0x00}, []byte{0x41, 0x00, 0x00, 0x00}, UTF32LE},
		{"none", nil, []byte{0x7B, 0x7D}, UTF8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			input := append(append([]byte{}, tc.bom...), tc.trailer...)
			f, r, err := Sniff(bytes.NewReader(input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, f)
			rest, _ := io.ReadAll(r)
			assert.Equal(t, tc.trailer, rest)
		})
	}
}
