package encoding

import (
	"errors"
	"io"
)

// ErrUnexpectedEOF is returned by Cursor.Next when a partial code unit is
// found at the end of input (e.g. a single trailing byte of a UTF-16 stream).
var ErrUnexpectedEOF = errors.New("encoding: unexpected end of input mid code unit")

// Cursor adapts an io.Reader of raw bytes, encoded in some Form, into a
// stream of host-endian code units. Dereferencing (Next) always yields a
// code unit whose integer value equals what the source means, regardless of
// the byte order the bytes were written in — the byte swap, if any, is
// applied once here rather than scattered through the parser.
//
// Each multi-byte read is a little-endian load followed by one branch on
// the tag's Endian field, which swaps the bytes for big-endian forms; the
// branch is evaluated on every read, not decided once in NewCursor.
type Cursor struct {
	r      io.Reader
	tag    Tag
	pos    int64
	pend   uint32
	havePd bool
	eof    bool
	buf    [4]byte
}

// NewCursor builds a Cursor reading raw bytes of the given form from r.
// Form may be an endianness-unspecified variant (UTF16, UTF32); it is
// resolved to the host-endian variant immediately.
func NewCursor(r io.Reader, f Form) *Cursor {
	return &Cursor{r: r, tag: TagFor(f)}
}

// Tag returns the resolved encoding tag this cursor was constructed with.
func (c *Cursor) Tag() Tag { return c.tag }

// Pos returns the number of bytes consumed from the underlying reader so far
// (used by the parser to report byte offsets in error messages).
func (c *Cursor) Pos() int64 { return c.pos }

// Next reads the next code unit, widened to uint32 and normalized to host
// byte order. ok is false at end of input (err is nil in that case); a
// non-nil err indicates a read error or a truncated trailing code unit.
func (c *Cursor) Next() (unit uint32, ok bool, err error) {
	if c.havePd {
		c.havePd = false
		return c.pend, true, nil
	}
	return c.read()
}

// Peek returns the next code unit without consuming it.
func (c *Cursor) Peek() (unit uint32, ok bool, err error) {
	if c.havePd {
		return c.pend, true, nil
	}
	u, ok, err := c.read()
	if err != nil || !ok {
		return 0, ok, err
	}
	c.pend = u
	c.havePd = true
	return u, true, nil
}

func (c *Cursor) read() (uint32, bool, error) {
	if c.eof {
		return 0, false, nil
	}
	n, err := io.ReadFull(c.r, c.buf[:c.tag.CodeUnitSize])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			c.eof = true
			return 0, false, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) || (errors.Is(err, io.EOF) && n > 0) {
			c.eof = true
			return 0, false, ErrUnexpectedEOF
		}
		return 0, false, err
	}
	c.pos += int64(c.tag.CodeUnitSize)
	switch c.tag.CodeUnitSize {
	case 1:
		return uint32(c.buf[0]), true, nil
	case 2:
		// Read the wire bytes as if little-endian, then byte-swap iff the
		// form is actually big-endian, using the ByteSwap16 primitive from
		// endian.go.
		raw := uint16(c.buf[0]) | uint16(c.buf[1])<<8
		if c.tag.Endian == BigEndian {
			raw = ByteSwap16(raw)
		}
		return uint32(raw), true, nil
	case 4:
		raw := uint32(c.buf[0]) | uint32(c.buf[1])<<8 | uint32(c.buf[2])<<16 | uint32(c.buf[3])<<24
		if c.tag.Endian == BigEndian {
			raw = ByteSwap32(raw)
		}
		return raw, true, nil
	default:
		panic("encoding: unsupported code unit size")
	}
}
