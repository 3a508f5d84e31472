package unicode

import "github.com/couchjson/jsoncore/encoding"

// DecodeOneStrict decodes one character from src, which holds raw wire
// bytes in the given source Form (any endianness variant), validating
// well-formedness. It returns the number of bytes (not code units)
// consumed.
func DecodeOneStrict(src []byte, form encoding.Form) (cp CodePoint, consumed int, err error) {
	tag := encoding.TagFor(form)
	switch tag.CodeUnitSize {
	case 1:
		return DecodeUTF8Strict(src)
	case 2:
		units, avail := widenUnits16(src, tag)
		cp, n, err := DecodeUTF16Strict(units[:avail])
		return cp, n * 2, err
	case 4:
		if len(src) < 4 {
			return 0, 0, ErrUnexpectedEndOfInput
		}
		cp, err := DecodeUTF32Strict(readUnit32(src, tag))
		return cp, 4, err
	default:
		panic("unicode: unsupported code unit size")
	}
}

// DecodeOneUnsafe mirrors DecodeOneStrict without validation.
func DecodeOneUnsafe(src []byte, form encoding.Form) (cp CodePoint, consumed int) {
	tag := encoding.TagFor(form)
	switch tag.CodeUnitSize {
	case 1:
		return DecodeUTF8Unsafe(src)
	case 2:
		units, avail := widenUnits16(src, tag)
		cp, n := DecodeUTF16Unsafe(units[:avail])
		return cp, n * 2
	case 4:
		return DecodeUTF32Unsafe(readUnit32(src, tag)), 4
	default:
		panic("unicode: unsupported code unit size")
	}
}

// EncodeOne writes cp into dst as the target Form, returning the number of
// bytes written.
func EncodeOne(cp CodePoint, form encoding.Form, dst []byte) (n int, err error) {
	tag := encoding.TagFor(form)
	switch tag.CodeUnitSize {
	case 1:
		return EncodeUTF8(cp, dst)
	case 2:
		var units [2]uint16
		nu, err := EncodeUTF16(cp, units[:])
		if err != nil {
			return 0, err
		}
		for i := 0; i < nu; i++ {
			writeUnit16(dst[i*2:i*2+2], tag, units[i])
		}
		return nu * 2, nil
	case 4:
		u, err := EncodeUTF32(cp)
		if err != nil {
			return 0, err
		}
		writeUnit32(dst, tag, u)
		return 4, nil
	default:
		panic("unicode: unsupported code unit size")
	}
}

// ConvertOne decodes one character from src (source Form) and encodes it
// into dst (target Form) in a single step, applying filt (if non-nil)
// between decode and encode.
func ConvertOne(src []byte, srcForm encoding.Form, dst []byte, dstForm encoding.Form, filt Filter) (consumed, written int, err error) {
	cp, consumed, err := DecodeOneStrict(src, srcForm)
	if err != nil {
		return consumed, 0, err
	}
	if filt != nil && filt.Match(cp) {
		if !filt.Replace() {
			return consumed, 0, &FilterRejectedError{CodePoint: cp}
		}
		cp = filt.Replacement(cp)
	}
	written, err = EncodeOne(cp, dstForm, dst)
	return consumed, written, err
}

func widenUnits16(src []byte, tag encoding.Tag) (units [2]uint16, avail int) {
	avail = len(src) / 2
	if avail > 2 {
		avail = 2
	}
	for i := 0; i < avail; i++ {
		units[i] = readUnit16(src[i*2:i*2+2], tag)
	}
	return
}

func readUnit16(b []byte, tag encoding.Tag) uint16 {
	raw := uint16(b[0]) | uint16(b[1])<<8
	if tag.Endian == encoding.BigEndian {
		return encoding.ByteSwap16(raw)
	}
	return raw
}

func writeUnit16(dst []byte, tag encoding.Tag, v uint16) {
	if tag.Endian == encoding.BigEndian {
		v = encoding.ByteSwap16(v)
	}
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}

func readUnit32(b []byte, tag encoding.Tag) uint32 {
	raw := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	if tag.Endian == encoding.BigEndian {
		return encoding.ByteSwap32(raw)
	}
	return raw
}

func writeUnit32(dst []byte, tag encoding.Tag, v uint32) {
	if tag.Endian == encoding.BigEndian {
		v = encoding.ByteSwap32(v)
	}
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}
