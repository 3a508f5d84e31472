package jsontree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/couchjson/jsoncore/actions"
	"github.com/couchjson/jsoncore/numbuilder"
	"github.com/couchjson/jsoncore/parser"
	"github.com/couchjson/jsoncore/unicode"
)

type objLevel struct {
	seen map[string]bool
	dup  bool
}

// Builder implements actions.Actions, assembling a Value tree as the
// parser drives it through one document. It is exported so other
// semantic-actions consumers (jsonpath's subtree capture) can drive a
// nested Builder over part of a document without re-implementing DOM
// assembly.
type Builder struct {
	stack      []*Value
	levels     []*objLevel
	pendingKey []byte
	chunkBuf   []byte
	chunking   bool
	result     *Value

	errCode actions.ErrorCode
	errMsg  string
	cancel  func() bool
}

// NewBuilder returns a Builder ready to receive Actions calls for one
// document or subtree.
func NewBuilder() *Builder {
	return &Builder{cancel: func() bool { return false }}
}

func (b *Builder) attach(v *Value) {
	if len(b.stack) == 0 {
		b.result = v
		return
	}
	parent := b.stack[len(b.stack)-1]
	switch parent.jsonType {
	case Array:
		parent.arrayValue = append(parent.arrayValue, v)
	case Object:
		parent.objectValue = append(parent.objectValue, pair{key: string(b.pendingKey), val: v})
	}
}

func (b *Builder) ParseBegin() {}
func (b *Builder) ParseEnd()   {}

func (b *Builder) IsCanceled() bool { return b.cancel() }

func (b *Builder) BeginArray() {
	b.stack = append(b.stack, &Value{jsonType: Array})
}

func (b *Builder) EndArray() {
	v := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.attach(v)
}

func (b *Builder) BeginObject() {
	b.stack = append(b.stack, &Value{jsonType: Object})
	b.levels = append(b.levels, &objLevel{seen: map[string]bool{}})
}

func (b *Builder) EndObject() bool {
	v := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	lvl := b.levels[len(b.levels)-1]
	b.levels = b.levels[:len(b.levels)-1]
	b.attach(v)
	return !lvl.dup
}

func (b *Builder) BeginValueAtIndex(index int) {}
func (b *Builder) EndValueAtIndex(index int)   {}

func (b *Builder) BeginValueWithKey(key []byte, index int) {}
func (b *Builder) EndValueWithKey(key []byte, index int)   {}

func (b *Builder) PushKey(key []byte) {
	b.pendingKey = append(b.pendingKey[:0], key...)
	lvl := b.levels[len(b.levels)-1]
	k := string(key)
	if lvl.seen[k] {
		lvl.dup = true
	}
	lvl.seen[k] = true
}

func (b *Builder) PushString(s []byte) {
	b.attach(&Value{jsonType: String, stringValue: string(s)})
}

func (b *Builder) ValueStringChunk(chunk []byte, hasMore bool) {
	b.chunking = true
	b.chunkBuf = append(b.chunkBuf, chunk...)
	if !hasMore {
		b.attach(&Value{jsonType: String, stringValue: string(b.chunkBuf)})
		b.chunkBuf = b.chunkBuf[:0]
		b.chunking = false
	}
}

func (b *Builder) PushNumber(n numbuilder.TaggedNumber) {
	switch n.Kind {
	case numbuilder.KindInteger:
		b.attach(&Value{jsonType: Integer, integerValue: n.Integer, numberLiteral: n.Literal})
	default:
		b.attach(&Value{jsonType: Number, numberValue: n.Float, numberLiteral: n.Literal})
	}
}

func (b *Builder) PushBoolean(v bool) { b.attach(&Value{jsonType: Boolean, booleanValue: v}) }
func (b *Builder) PushNull()          { b.attach(&Value{jsonType: Null}) }

func (b *Builder) Error(code actions.ErrorCode, msg string) {
	b.errCode = code
	b.errMsg = msg
}

func (b *Builder) UnicodeNoncharacterHandling() unicode.FilterPolicy {
	return actions.DefaultFilterPolicy
}

func (b *Builder) InputEncoding(name string) {}

func (b *Builder) Result() any { return b.result }

// Parse reads one JSON document from r and returns its root Value.
func Parse(r io.Reader, opts ...parser.Option) (*Value, error) {
	b := NewBuilder()
	p := parser.New(b, opts...)
	if err := p.Parse(r); err != nil {
		code, msg := p.State()
		return nil, fmt.Errorf("%w: %s (%s)", ErrParse, msg, code)
	}
	return b.result, nil
}

// ParseString parses a JSON document held in a string.
func ParseString(s string, opts ...parser.Option) (*Value, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseBytes parses a JSON document held in a byte slice.
func ParseBytes(data []byte, opts ...parser.Option) (*Value, error) {
	return Parse(bytes.NewReader(data), opts...)
}
