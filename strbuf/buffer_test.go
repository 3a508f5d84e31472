package strbuf

import (
	"testing"

	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/unicode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferAppendASCII(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	b.AppendASCII('h')
	b.AppendASCII('i')
	assert.Equal(t, []byte("hi"), b.Bytes())
	assert.Equal(t, 2, b.Len())
}

func TestBufferAppendASCIIRejectsHighBit(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	assert.Panics(t, func() { b.AppendASCII(0x80) })
}

func TestBufferAppendCodePointUTF8(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	require.NoError(t, b.AppendCodePoint(0x1F600))
	assert.Equal(t, []byte{0xF0, 0x9F, 0x98, 0x80}, b.Bytes())
}

func TestBufferAppendCodePointUTF16Surrogates(t *testing.T) {
	b := New(encoding.UTF16, ModeData, false, nil)
	require.NoError(t, b.AppendCodePoint(0x1D11E))
	assert.Equal(t, 2, b.Len())
}

func TestBufferAppendCodePointRejectsSurrogate(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	err := b.AppendCodePoint(0xD800)
	assert.Error(t, err)
}

func TestBufferReset(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	b.AppendASCII('x')
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Bytes())
}

func TestBufferReserveGrowsCapacity(t *testing.T) {
	b := New(encoding.UTF8, ModeData, false, nil)
	startCap := cap(b.buf)
	b.Reserve(startCap + 1)
	assert.Greater(t, cap(b.buf), startCap)
}

func TestBufferFlushInvokesSinkAndResets(t *testing.T) {
	var gotChunks [][]byte
	var gotMore []bool
	b := New(encoding.UTF8, ModeData, true, func(chunk []byte, hasMore bool) error {
		cp := append([]byte(nil), chunk...)
		gotChunks = append(gotChunks, cp)
		gotMore = append(gotMore, hasMore)
		return nil
	})
	b.AppendASCII('a')
	b.AppendASCII('b')
	require.NoError(t, b.Flush(false))
	assert.Equal(t, [][]byte{[]byte("ab")}, gotChunks)
	assert.Equal(t, []bool{false}, gotMore)
	assert.Equal(t, 0, b.Len())
}

func TestBufferExtendFlushesLargeDataBuffer(t *testing.T) {
	flushes := 0
	b := New(encoding.UTF8, ModeData, true, func(chunk []byte, hasMore bool) error {
		flushes++
		assert.True(t, hasMore)
		return nil
	})
	for i := 0; i < minStringSizeUnits+1; i++ {
		b.AppendASCII('a')
	}
	require.NoError(t, b.Extend(cap(b.buf)+1))
	assert.Equal(t, 1, flushes)
	assert.Equal(t, 0, b.Len())
}

func TestBufferExtendKeyModeNeverFlushes(t *testing.T) {
	b := New(encoding.UTF8, ModeKey, true, func(chunk []byte, hasMore bool) error {
		t.Fatal("key buffer must never flush")
		return nil
	})
	for i := 0; i < minStringSizeUnits+1; i++ {
		b.AppendASCII('a')
	}
	err := b.Extend(cap(b.buf) + 1)
	assert.ErrorIs(t, err, ErrKeyTooLarge)
}

func TestBufferAppendCodePointUnsafeUTF32(t *testing.T) {
	b := New(encoding.UTF32, ModeData, false, nil)
	b.AppendCodePointUnsafe(unicode.CodePoint(0x41))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []byte{0x41, 0, 0, 0}, b.Bytes())
}
