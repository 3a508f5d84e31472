package encode

import (
	"testing"

	"github.com/couchjson/jsoncore/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringEscapesQuoteAndBackslash(t *testing.T) {
	out, err := String([]byte(`a"b\c`), encoding.UTF8, encoding.UTF8, 0)
	require.NoError(t, err)
	assert.Equal(t, `a\"b\\c`, string(out))
}

func TestStringEscapesControlShorthands(t *testing.T) {
	out, err := String([]byte("a\nb\tc"), encoding.UTF8, encoding.UTF8, 0)
	require.NoError(t, err)
	assert.Equal(t, `a\nb\tc`, string(out))
}

func TestStringEscapesControlCharToUnicodeEscape(t *testing.T) {
	out, err := String([]byte{0x01}, encoding.UTF8, encoding.UTF8, 0)
	require.NoError(t, err)
	assert.Equal(t, "\\u0001", string(out))
}

func TestStringDoesNotEscapeSolidusByDefault(t *testing.T) {
	out, err := String([]byte("a/b"), encoding.UTF8, encoding.UTF8, 0)
	require.NoError(t, err)
	assert.Equal(t, "a/b", string(out))
}

func TestStringEscapesSolidusWhenRequested(t *testing.T) {
	out, err := String([]byte("a/b"), encoding.UTF8, encoding.UTF8, EscapeSolidus)
	require.NoError(t, err)
	assert.Equal(t, `a\/b`, string(out))
}

func TestStringPassesThroughNonASCIIByDefault(t *testing.T) {
	out, err := String([]byte("caf\xc3\xa9"), encoding.UTF8, encoding.UTF8, 0)
	require.NoError(t, err)
	assert.Equal(t, "caf\xc3\xa9", string(out))
}

func TestStringEscapesNonASCIIWhenRequested(t *testing.T) {
	out, err := String([]byte{0xc3, 0xa9}, encoding.UTF8, encoding.UTF8, EscapeNonASCII)
	require.NoError(t, err)
	assert.Equal(t, "\\u00e9", string(out))
}

func TestStringEscapesSupplementaryPlaneAsSurrogatePair(t *testing.T) {
	out, err := String([]byte{0xf0, 0x9f, 0x98, 0x80}, encoding.UTF8, encoding.UTF8, EscapeNonASCII)
	require.NoError(t, err)
	assert.Equal(t, "\\ud83d\\ude00", string(out))
}

func TestStringRejectsIllFormedSource(t *testing.T) {
	_, err := String([]byte{0xC0, 0x80}, encoding.UTF8, encoding.UTF8, 0)
	assert.Error(t, err)
}
