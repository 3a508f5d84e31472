package actions

import (
	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/numbuilder"
	"github.com/couchjson/jsoncore/unicode"
)

// Actions is the semantic-actions contract. parser.Parser
// drives a single implementation through exactly one call sequence for a
// well-formed document; on the first error, the parser calls Error once
// and stops.
//
// Container events bracket their contents: BeginArray/EndArray and
// BeginObject/EndObject wrap a sequence of BeginValueAtIndex/EndValueAtIndex
// or BeginValueWithKey/EndValueWithKey pairs, each of which wraps exactly
// one PushString/PushNumber/PushBoolean/PushNull call, or a nested
// container.
type Actions interface {
	// ParseBegin is called once, before any input is consumed.
	ParseBegin()
	// ParseEnd is called once, after the top-level value (and any trailing
	// whitespace the parser was configured to skip) has been consumed
	// without error.
	ParseEnd()

	// IsCanceled is polled before ParseBegin and, in this implementation,
	// once per container-element iteration, so a long top-level array can
	// be aborted between elements.
	IsCanceled() bool

	BeginArray()
	EndArray()

	BeginObject()
	// EndObject reports whether the object's keys were all unique; false
	// causes the parser to surface ErrDuplicateKey.
	EndObject() bool

	BeginValueAtIndex(index int)
	EndValueAtIndex(index int)

	BeginValueWithKey(key []byte, index int)
	EndValueWithKey(key []byte, index int)

	// PushKey delivers one fully-assembled object key.
	PushKey(key []byte)
	// PushString delivers one fully-assembled string value (small enough
	// that it was never chunked).
	PushString(s []byte)
	// ValueStringChunk delivers one chunk of a string value too large to
	// buffer whole. The chunk slice is reused on the next call; callers
	// that must retain it need to copy. hasMore is false on the final
	// chunk (which may be empty).
	ValueStringChunk(chunk []byte, hasMore bool)

	PushNumber(n numbuilder.TaggedNumber)
	PushBoolean(b bool)
	PushNull()

	// Error is called at most once per parse, with the first error
	// encountered.
	Error(code ErrorCode, msg string)

	// UnicodeNoncharacterHandling reports which filter policy the parser
	// should apply to noncharacters and other screened code points while
	// scanning strings.
	UnicodeNoncharacterHandling() unicode.FilterPolicy
	// InputEncoding is informed of the encoding the parser detected or was
	// configured with, by canonical name, once per parse.
	InputEncoding(name string)

	// Result returns the implementation's accumulated result (e.g. a
	// jsontree.Value), valid after ParseEnd.
	Result() any
}

// DefaultFilterPolicy is the policy an Actions implementation should
// report from UnicodeNoncharacterHandling when it has no specific
// requirement.
const DefaultFilterPolicy = unicode.PolicySignalError

// FormName returns the canonical name the parser reports to
// InputEncoding for a resolved encoding.Form.
func FormName(f encoding.Form) string { return f.String() }
