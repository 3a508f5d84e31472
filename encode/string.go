package encode

import (
	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/unicode"
)

// Options is a bitmask controlling optional escaping behavior of String.
type Options uint8

const (
	// EscapeSolidus escapes '/' as "\/". Off by default, since it is
	// never required by RFC 8259 — only useful for embedding JSON inside
	// HTML <script> blocks.
	EscapeSolidus Options = 1 << iota
	// EscapeNonASCII emits "\uXXXX" (or a surrogate pair for supplementary
	// code points) for every code point >= 0x80, instead of encoding it
	// directly in the target encoding.
	EscapeNonASCII
)

const hexDigits = "0123456789abcdef"

// String decodes src (in srcForm) and re-encodes it as a JSON-escaped
// string literal's contents (without the surrounding quotes) in dstForm.
// The mandatory escape set — '"', '\\', and U+0000..U+001F — is always
// applied; solidus and non-ASCII escaping are controlled by opts.
func String(src []byte, srcForm encoding.Form, dstForm encoding.Form, opts Options) ([]byte, error) {
	dst := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		cp, n, err := unicode.DecodeOneStrict(src[i:], srcForm)
		if err != nil {
			return nil, err
		}
		i += n

		switch {
		case cp == '"':
			dst = appendEscape(dst, '"', dstForm)
		case cp == '\\':
			dst = appendEscape(dst, '\\', dstForm)
		case cp == '/' && opts&EscapeSolidus != 0:
			dst = appendEscape(dst, '/', dstForm)
		case cp < 0x20:
			dst = appendControlEscape(dst, cp, dstForm)
		case cp >= 0x80 && opts&EscapeNonASCII != 0:
			dst = appendUnicodeEscape(dst, cp, dstForm)
		default:
			dst = appendCodePoint(dst, cp, dstForm)
		}
	}
	return dst, nil
}

func appendCodePoint(dst []byte, cp unicode.CodePoint, form encoding.Form) []byte {
	var tmp [4]byte
	n, err := unicode.EncodeOne(cp, form, tmp[:])
	if err != nil {
		// Every code point reaching here was already validated by
		// DecodeOneStrict against srcForm; re-encoding into dstForm cannot
		// fail for a valid scalar value.
		panic("encode: unreachable re-encode failure")
	}
	return append(dst, tmp[:n]...)
}

func appendEscape(dst []byte, shorthand byte, form encoding.Form) []byte {
	dst = appendCodePoint(dst, '\\', form)
	return appendCodePoint(dst, unicode.CodePoint(shorthand), form)
}

func appendControlEscape(dst []byte, cp unicode.CodePoint, form encoding.Form) []byte {
	switch cp {
	case '\b':
		return appendEscape(dst, 'b', form)
	case '\f':
		return appendEscape(dst, 'f', form)
	case '\n':
		return appendEscape(dst, 'n', form)
	case '\r':
		return appendEscape(dst, 'r', form)
	case '\t':
		return appendEscape(dst, 't', form)
	default:
		return appendUnicodeEscape(dst, cp, form)
	}
}

// appendUnicodeEscape writes "\uXXXX", splitting into a surrogate pair
// ("\uXXXX\uXXXX") for code points beyond the BMP. This always writes the
// two-character "\u" prefix — the legacy generator bug (one code path
// emitting a literal newline instead of the prefix) does not exist here.
func appendUnicodeEscape(dst []byte, cp unicode.CodePoint, form encoding.Form) []byte {
	if cp > 0xFFFF {
		hi, lo := unicode.SplitSurrogatePair(cp)
		dst = appendHex4(dst, uint16(hi), form)
		return appendHex4(dst, uint16(lo), form)
	}
	return appendHex4(dst, uint16(cp), form)
}

func appendHex4(dst []byte, v uint16, form encoding.Form) []byte {
	dst = appendCodePoint(dst, '\\', form)
	dst = appendCodePoint(dst, 'u', form)
	for shift := 12; shift >= 0; shift -= 4 {
		digit := (v >> uint(shift)) & 0xF
		dst = appendCodePoint(dst, unicode.CodePoint(hexDigits[digit]), form)
	}
	return dst
}
