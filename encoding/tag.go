package encoding

import "fmt"

// Form identifies a Unicode encoding form a JSON document may be encoded in.
type Form int8

const (
	// UTF16 and UTF32 with unspecified endianness are promoted to the host
	// variant wherever a Cursor or a conversion actually needs to read bytes.
	UTF8 Form = iota
	UTF16
	UTF16BE
	UTF16LE
	UTF32
	UTF32BE
	UTF32LE
)

func (f Form) String() string {
	if s, ok := formNames[f]; ok {
		return s
	}
	return "<unknown encoding>"
}

var formNames = map[Form]string{
	UTF8:    "UTF-8",
	UTF16:   "UTF-16",
	UTF16BE: "UTF-16BE",
	UTF16LE: "UTF-16LE",
	UTF32:   "UTF-32",
	UTF32BE: "UTF-32BE",
	UTF32LE: "UTF-32LE",
}

// Endian describes the byte order of a multi-byte encoding form.
type Endian int8

const (
	// HostEndian means "no byte swap needed" — true for UTF-8 (byte-oriented)
	// and for whichever of big/little matches the running machine.
	HostEndian Endian = iota
	LittleEndian
	BigEndian
)

// Tag is the runtime-constant descriptor for one encoding form. There is one
// Tag value per Form, looked up via TagFor; Go has no template specialization
// tree to hang these off of, so the "compile-time description" from the
// reference implementation becomes a small read-only table instead.
type Tag struct {
	Form                Form
	CodeUnitSize        int // bytes per code unit: 1, 2, or 4
	Endian              Endian
	BOM                 []byte
	MaxCodeUnitsPerChar int
}

var tags = map[Form]Tag{
	UTF8:    {Form: UTF8, CodeUnitSize: 1, Endian: HostEndian, BOM: []byte{0xEF, 0xBB, 0xBF}, MaxCodeUnitsPerChar: 4},
	UTF16BE: {Form: UTF16BE, CodeUnitSize: 2, Endian: BigEndian, BOM: []byte{0xFE, 0xFF}, MaxCodeUnitsPerChar: 2},
	UTF16LE: {Form: UTF16LE, CodeUnitSize: 2, Endian: LittleEndian, BOM: []byte{0xFF, 0xFE}, MaxCodeUnitsPerChar: 2},
	UTF32BE: {Form: UTF32BE, CodeUnitSize: 4, Endian: BigEndian, BOM: []byte{0x00, 0x00, 0xFE, 0xFF}, MaxCodeUnitsPerChar: 1},
	UTF32LE: {Form: UTF32LE, CodeUnitSize: 4, Endian: LittleEndian, BOM: []byte{0xFF, 0xFE, 0x00, 0x00}, MaxCodeUnitsPerChar: 1},
}

// TagFor returns the descriptor for a resolved form. UTF16 and UTF32
// (unspecified endianness) are resolved to the host variant first.
func TagFor(f Form) Tag {
	return tags[f.Resolve()]
}

// Resolve promotes an endianness-unspecified form (UTF16, UTF32) to the
// host-endianness variant. UTF8 and already-resolved forms are unchanged.
func (f Form) Resolve() Form {
	switch f {
	case UTF16:
		if HostIsBigEndian {
			return UTF16BE
		}
		return UTF16LE
	case UTF32:
		if HostIsBigEndian {
			return UTF32BE
		}
		return UTF32LE
	default:
		return f
	}
}

// IsHostEndian reports whether values of this form require no byte swap
// on the running machine.
func (f Form) IsHostEndian() bool {
	t := TagFor(f)
	switch t.Endian {
	case HostEndian:
		return true
	case LittleEndian:
		return !HostIsBigEndian
	case BigEndian:
		return HostIsBigEndian
	default:
		panic(fmt.Sprintf("encoding: unhandled endian tag %v", t.Endian))
	}
}
