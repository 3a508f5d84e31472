package numbuilder

import (
	"errors"
	"math"
	"strconv"
)

// ErrNumberOutOfRange is returned by Normalize when the literal's exponent,
// after combining the explicit exponent with the fractional-digit-count and
// precision-truncation corrections, does not fit in an int16.
var ErrNumberOutOfRange = errors.New("numbuilder: number exponent out of range")

// Span is a half-open byte range [Start, End) into Builder.Verbatim().
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// Ranges reports the five spans captured for one number literal.
// DecimalPoint covers the '.' byte when present; Exponent starts at the
// byte after the 'e'/'E' indicator (the exponent's sign or first digit), so
// the indicator itself lies in no span. A zero-length Span means "absent".
type Ranges struct {
	Sign         Span
	Integer      Span
	DecimalPoint Span
	Fractional   Span
	Exponent     Span
}

type section int8

const (
	sectionNone section = iota
	sectionInteger
	sectionFractional
	sectionExponent
)

// Builder accumulates one JSON number literal as a contiguous ASCII byte
// buffer plus index ranges into it, fed by one event per token class as the
// parser scans the literal.
type Builder struct {
	buf        []byte
	current    section
	sign       Span
	integer    Span
	point      Span
	fractional Span
	exponent   Span

	negative         bool
	hasFractional    bool
	hasExponent      bool
	exponentNegative bool
}

// Reset discards the current literal, reusing the backing array.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.current = sectionNone
	b.sign = Span{}
	b.integer = Span{}
	b.point = Span{}
	b.fractional = Span{}
	b.exponent = Span{}
	b.negative = false
	b.hasFractional = false
	b.hasExponent = false
	b.exponentNegative = false
}

// PushSign records the mantissa's sign. It must be called, if at all,
// before PushIntegerStart.
func (b *Builder) PushSign(negative bool) {
	start := len(b.buf)
	if negative {
		b.buf = append(b.buf, '-')
		b.negative = true
	}
	b.sign = Span{start, len(b.buf)}
}

// PushIntegerStart opens the integer digit range with its first digit.
func (b *Builder) PushIntegerStart(digit byte) {
	b.integer.Start = len(b.buf)
	b.buf = append(b.buf, digit)
	b.integer.End = len(b.buf)
	b.current = sectionInteger
}

// PushDigit appends d to whichever range is currently open (integer,
// fractional, or exponent).
func (b *Builder) PushDigit(d byte) {
	b.buf = append(b.buf, d)
	switch b.current {
	case sectionInteger:
		b.integer.End = len(b.buf)
	case sectionFractional:
		b.fractional.End = len(b.buf)
	case sectionExponent:
		b.exponent.End = len(b.buf)
	}
}

// IntegerEnd closes the integer range.
func (b *Builder) IntegerEnd() { b.current = sectionNone }

// PushDecimalPoint appends '.' and opens the fractional range, to be
// extended by subsequent PushDigit calls.
func (b *Builder) PushDecimalPoint() {
	b.point.Start = len(b.buf)
	b.buf = append(b.buf, '.')
	b.point.End = len(b.buf)
	b.hasFractional = true
	b.fractional = Span{len(b.buf), len(b.buf)}
	b.current = sectionFractional
}

// FractionalEnd closes the fractional range.
func (b *Builder) FractionalEnd() { b.current = sectionNone }

// PushExponentIndicator appends the 'e' or 'E' byte and marks the literal
// as having an exponent part.
func (b *Builder) PushExponentIndicator(eOrE byte) {
	b.buf = append(b.buf, eOrE)
	b.hasExponent = true
}

// PushExponentStart opens the exponent range. digitOrSign is either the
// first exponent digit or a leading '+'/'-'.
func (b *Builder) PushExponentStart(digitOrSign byte) {
	b.exponent.Start = len(b.buf)
	b.buf = append(b.buf, digitOrSign)
	b.exponent.End = len(b.buf)
	if digitOrSign == '-' {
		b.exponentNegative = true
	}
	b.current = sectionExponent
}

// ExponentEnd closes the exponent range.
func (b *Builder) ExponentEnd() { b.current = sectionNone }

// Verbatim returns a view over the captured ASCII bytes of the literal,
// always a syntactically valid JSON number.
func (b *Builder) Verbatim() []byte { return b.buf }

// Ranges reports the five spans captured for the current literal.
func (b *Builder) Ranges() Ranges {
	return Ranges{
		Sign:         b.sign,
		Integer:      b.integer,
		DecimalPoint: b.point,
		Fractional:   b.fractional,
		Exponent:     b.exponent,
	}
}

// NormalizedNumber is the combined-mantissa/exponent normal form of a
// number literal.
type NormalizedNumber struct {
	Mantissa uint64
	Exponent int16
	Negative bool
}

func digitSpan(buf []byte, s Span) []byte { return buf[s.Start:s.End] }

// exponentDigits strips a leading sign from the exponent span, if present.
func (b *Builder) exponentDigits() []byte {
	d := digitSpan(b.buf, b.exponent)
	if len(d) > 0 && (d[0] == '+' || d[0] == '-') {
		return d[1:]
	}
	return d
}

// Normalize computes the mantissa/exponent/sign normal form, right-
// truncating digits that exceed uint64 precision and compensating the
// exponent.
func (b *Builder) Normalize() (NormalizedNumber, error) {
	digits := make([]byte, 0, b.integer.Len()+b.fractional.Len())
	digits = append(digits, digitSpan(b.buf, b.integer)...)
	digits = append(digits, digitSpan(b.buf, b.fractional)...)

	fractionalLen := b.fractional.Len()

	truncated := 0
	const maxDigits = 19
	if len(digits) > maxDigits {
		truncated = len(digits) - maxDigits
		digits = digits[:maxDigits]
	}

	var mantissa uint64
	for {
		if len(digits) == 0 {
			mantissa = 0
			break
		}
		v, err := strconv.ParseUint(string(digits), 10, 64)
		if err == nil {
			mantissa = v
			break
		}
		digits = digits[:len(digits)-1]
		truncated++
	}

	explicitExponent := int64(0)
	if b.hasExponent {
		expDigits := b.exponentDigits()
		v, err := strconv.ParseInt(string(expDigits), 10, 32)
		if err != nil {
			return NormalizedNumber{}, ErrNumberOutOfRange
		}
		explicitExponent = v
		if b.exponentNegative {
			explicitExponent = -explicitExponent
		}
	}

	totalExponent := explicitExponent - int64(fractionalLen) + int64(truncated)
	if totalExponent < math.MinInt16 || totalExponent > math.MaxInt16 {
		return NormalizedNumber{}, ErrNumberOutOfRange
	}

	return NormalizedNumber{
		Mantissa: mantissa,
		Exponent: int16(totalExponent),
		Negative: b.negative,
	}, nil
}

// TaggedKind selects which field of TaggedNumber holds the parsed value.
type TaggedKind int8

const (
	KindInteger TaggedKind = iota
	KindFloat
	KindInvalid
)

// TaggedNumber is the parser-facing sum type for a parsed number literal.
// Literal carries the exact source digits regardless of Kind, so a
// consumer that needs more precision than int64/float64 can give (a large
// integer, or a decimal value headed for an arbitrary-precision type) does
// not have to re-derive them from a lossy Integer/Float conversion.
type TaggedNumber struct {
	Kind    TaggedKind
	Integer int64
	Float   float64
	Literal string
}

// TaggedNumber classifies and parses the literal: integer-only literals
// (no decimal point, no exponent) that fit an int64 become KindInteger;
// everything else is parsed as a float64. A literal that fails both parses
// (should not occur for a well-formed grammar match) becomes KindInvalid
// with Float set to math.NaN() as a sentinel.
func (b *Builder) TaggedNumber() TaggedNumber {
	literal := string(b.buf)
	if !b.hasFractional && !b.hasExponent {
		if v, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return TaggedNumber{Kind: KindInteger, Integer: v, Literal: literal}
		}
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err == nil {
		return TaggedNumber{Kind: KindFloat, Float: v, Literal: literal}
	}
	// A huge exponent makes ParseFloat report ErrRange while still handing
	// back a meaningful ±Inf (or 0) value — that's a valid JSON number
	// saturating float64's range, not a malformed literal.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return TaggedNumber{Kind: KindFloat, Float: v, Literal: literal}
	}
	return TaggedNumber{Kind: KindInvalid, Float: math.NaN(), Literal: literal}
}
