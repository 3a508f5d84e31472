package jsontree

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/couchjson/jsoncore/encode"
	"github.com/couchjson/jsoncore/encoding"
)

// encoder writes a Value tree as JSON. Value.String() is a debug
// rendering only, not valid JSON; this is the RFC-8259-conformant writer.
type encoder struct {
	w      io.Writer
	indent string
	opts   encode.Options
	depth  int
	err    error
}

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
	}
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.writeString("\n")
	for i := 0; i < e.depth; i++ {
		e.writeString(e.indent)
	}
}

func (e *encoder) encodeValue(v *Value) {
	if e.err != nil {
		return
	}
	switch v.jsonType {
	case Null:
		e.writeString("null")
	case Boolean:
		if v.booleanValue {
			e.writeString("true")
		} else {
			e.writeString("false")
		}
	case Integer:
		e.writeString(strconv.FormatInt(v.integerValue, 10))
	case Number:
		e.encodeNumber(v.numberValue)
	case String:
		e.encodeStringValue(v.stringValue)
	case Array:
		e.encodeArray(v)
	case Object:
		e.encodeObject(v)
	default:
		e.err = fmt.Errorf("jsontree: cannot encode value of unknown type %v", v.jsonType)
	}
}

func (e *encoder) encodeNumber(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.err = fmt.Errorf("jsontree: cannot encode non-finite number %v", f)
		return
	}
	e.writeString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (e *encoder) encodeStringValue(s string) {
	out, err := encode.String([]byte(s), encoding.UTF8, encoding.UTF8, e.opts)
	if err != nil {
		e.err = err
		return
	}
	e.writeString(`"`)
	e.writeString(string(out))
	e.writeString(`"`)
}

func (e *encoder) encodeArray(v *Value) {
	if len(v.arrayValue) == 0 {
		e.writeString("[]")
		return
	}
	e.writeString("[")
	e.depth++
	for i, elem := range v.arrayValue {
		if i > 0 {
			e.writeString(",")
		}
		e.newline()
		e.encodeValue(elem)
	}
	e.depth--
	e.newline()
	e.writeString("]")
}

func (e *encoder) encodeObject(v *Value) {
	if len(v.objectValue) == 0 {
		e.writeString("{}")
		return
	}
	e.writeString("{")
	e.depth++
	for i, p := range v.objectValue {
		if i > 0 {
			e.writeString(",")
		}
		e.newline()
		e.encodeStringValue(p.key)
		e.writeString(": ")
		e.encodeValue(p.val)
	}
	e.depth--
	e.newline()
	e.writeString("}")
}

// Encode writes v to w as compact JSON, using opts to control the output
// string escaping (solidus, non-ASCII).
func (v *Value) Encode(w io.Writer, opts encode.Options) error {
	e := &encoder{w: w, opts: opts}
	e.encodeValue(v)
	return e.err
}

// Marshal renders v as compact JSON bytes.
func Marshal(v *Value, opts encode.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Encode(&buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent renders v as indented JSON bytes, one element or member per
// line, prefixed by indent repeated once per nesting level.
func MarshalIndent(v *Value, indent string, opts encode.Options) ([]byte, error) {
	var buf bytes.Buffer
	e := &encoder{w: &buf, opts: opts, indent: indent}
	e.encodeValue(v)
	if e.err != nil {
		return nil, e.err
	}
	return buf.Bytes(), nil
}
