package strbuf

import (
	"errors"
	"fmt"

	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/unicode"
)

// Mode distinguishes a buffer staging an object key from one staging a
// string value. Key buffers must never flush mid-parse.
type Mode int8

const (
	ModeData Mode = iota
	ModeKey
)

// ErrKeyTooLarge is returned by Extend when a ModeKey buffer would need to
// flush to make room — flushing a key is a logic error.
var ErrKeyTooLarge = errors.New("strbuf: key string exceeds buffer without flushing")

const (
	initialCapacityUnits = 512
	minStringSizeUnits   = 1024
	maxGrowthStepUnits   = 4096
)

// Sink receives a flushed chunk of raw, staging-encoded bytes. hasMore is
// true when more chunks of the same logical string will follow.
type Sink func(chunk []byte, hasMore bool) error

// Buffer is the string staging buffer. Its staging encoding is fixed
// at construction to one of UTF-8, UTF-16 (host-endian), or UTF-32
// (host-endian); parser.Parser itself always stages in UTF-8.
type Buffer struct {
	form         encoding.Form
	unitSize     int
	buf          []byte
	mode         Mode
	allowPartial bool
	sink         Sink
}

// New builds a Buffer staging in the given form (UTF8, UTF16, or UTF32 —
// endianness-unspecified forms resolve to host endian, matching the
// reference implementation's requirement that staging encoding endianness
// always equal host endianness).
func New(form encoding.Form, mode Mode, allowPartial bool, sink Sink) *Buffer {
	resolved := form.Resolve()
	tag := encoding.TagFor(resolved)
	return &Buffer{
		form:         resolved,
		unitSize:     tag.CodeUnitSize,
		buf:          make([]byte, 0, initialCapacityUnits*tag.CodeUnitSize),
		mode:         mode,
		allowPartial: allowPartial,
		sink:         sink,
	}
}

// Form reports the resolved staging encoding.
func (b *Buffer) Form() encoding.Form { return b.form }

// Reset discards the buffer's contents but keeps its backing array.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Len returns the number of code units currently staged.
func (b *Buffer) Len() int { return len(b.buf) / b.unitSize }

// Bytes returns the raw staged bytes (staging-encoding order, host endian).
func (b *Buffer) Bytes() []byte { return b.buf }

// Reserve ensures capacity for n additional code units, growing
// geometrically (doubling, capped at maxGrowthStepUnits code units per
// step once the buffer is already large) without flushing.
func (b *Buffer) Reserve(n int) {
	need := len(b.buf) + n*b.unitSize
	if need <= cap(b.buf) {
		return
	}
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = initialCapacityUnits * b.unitSize
	}
	for newCap < need {
		step := newCap
		if step > maxGrowthStepUnits*b.unitSize {
			step = maxGrowthStepUnits * b.unitSize
		}
		newCap += step
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}

// Extend ensures n additional code units fit, flushing first if partial
// strings are allowed, the buffer already exceeds MinStringSize, and
// growing in place would otherwise be required. Key-mode buffers never
// flush: if a flush would be needed, Extend returns ErrKeyTooLarge instead.
func (b *Buffer) Extend(n int) error {
	need := len(b.buf) + n*b.unitSize
	if need <= cap(b.buf) {
		return nil
	}
	if b.Len() > minStringSizeUnits {
		if b.mode == ModeKey {
			return ErrKeyTooLarge
		}
		if b.allowPartial {
			if err := b.Flush(true); err != nil {
				return err
			}
		}
	}
	b.Reserve(n)
	return nil
}

// AppendASCII appends a single ASCII byte (0 <= c <= 0x7F), widened to the
// staging code unit size.
func (b *Buffer) AppendASCII(c byte) {
	if c > 0x7F {
		panic(fmt.Sprintf("strbuf: AppendASCII called with non-ASCII byte 0x%02X", c))
	}
	b.appendUnit(uint32(c))
}

// AppendCodePoint encodes cp into the staging encoding and appends it,
// validating cp first.
func (b *Buffer) AppendCodePoint(cp unicode.CodePoint) error {
	var tmp [4]byte
	n, err := unicode.EncodeOne(cp, b.form, tmp[:])
	if err != nil {
		return err
	}
	b.buf = append(b.buf, tmp[:n]...)
	return nil
}

// AppendCodePointUnsafe encodes cp without validating it; the caller must
// already know cp is valid (e.g. it was produced by the parser's own
// decode-and-filter pass).
func (b *Buffer) AppendCodePointUnsafe(cp unicode.CodePoint) {
	switch b.unitSize {
	case 1:
		var tmp [4]byte
		n := unicode.EncodeUTF8Unsafe(cp, tmp[:])
		b.buf = append(b.buf, tmp[:n]...)
	case 2:
		var units [2]uint16
		n, _ := unicode.EncodeUTF16(cp, units[:])
		for i := 0; i < n; i++ {
			b.appendUnit(uint32(units[i]))
		}
	case 4:
		b.appendUnit(uint32(cp))
	}
}

func (b *Buffer) appendUnit(v uint32) {
	switch b.unitSize {
	case 1:
		b.buf = append(b.buf, byte(v))
	case 2:
		b.buf = append(b.buf, byte(v), byte(v>>8))
	case 4:
		b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
}

// Flush emits the buffer's current contents to the sink as one chunk, then
// resets. hasMore tells the sink whether more chunks for the same logical
// string follow. Flushing a ModeKey buffer is a logic error (callers should
// never let Extend force this — see ErrKeyTooLarge) but Flush itself does
// not re-check the mode, since the parser reads a finished key buffer with
// Bytes and never calls Flush on it.
func (b *Buffer) Flush(hasMore bool) error {
	if b.sink == nil {
		b.Reset()
		return nil
	}
	if err := b.sink(b.buf, hasMore); err != nil {
		return err
	}
	b.Reset()
	return nil
}
