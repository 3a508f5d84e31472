package jsonpath

import (
	"github.com/couchjson/jsoncore/actions"
	"github.com/couchjson/jsoncore/jsontree"
	"github.com/couchjson/jsoncore/numbuilder"
	"github.com/couchjson/jsoncore/unicode"
)

type subscription struct {
	path []Segment
	fn   func(*jsontree.Value)
}

type objLevel struct {
	seen map[string]bool
	dup  bool
}

// activeCapture tracks delegation to a nested jsontree.Builder while the
// scanner is inside a subtree matched by a subscription. nestDepth counts
// Begin/EndValue* pairs seen since capture started, so the scanner knows
// which EndValueAtIndex/EndValueWithKey call closes the matched subtree
// rather than one of its descendants.
type activeCapture struct {
	builder   *jsontree.Builder
	nestDepth int
	fn        func(*jsontree.Value)
}

// Scanner is an actions.Actions implementation that, given a set of
// subscribed paths, captures only the matching sub-values of a streaming
// parse as jsontree.Values and hands them to the subscriber's callback —
// without ever materializing the rest of the document.
//
// A subscription nested inside another subscription's matched subtree (for
// example subscribing to both "a" and "a.b") will not fire independently:
// once "a" starts capturing, everything under it is owned by that capture
// and delivered as part of its result.
type Scanner struct {
	subs   []subscription
	path   []Segment
	levels []*objLevel
	active *activeCapture

	errCode actions.ErrorCode
	errMsg  string
	cancel  func() bool
}

// NewScanner returns a Scanner with no subscriptions registered.
func NewScanner() *Scanner {
	return &Scanner{cancel: func() bool { return false }}
}

// Subscribe registers fn to be called once for every value found at path
// during the next parse this Scanner drives.
func (s *Scanner) Subscribe(path string, fn func(*jsontree.Value)) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, subscription{path: segs, fn: fn})
	return nil
}

func (s *Scanner) matching() *subscription {
	for i := range s.subs {
		if segmentsEqual(s.subs[i].path, s.path) {
			return &s.subs[i]
		}
	}
	return nil
}

func (s *Scanner) tryStartCapture() {
	sub := s.matching()
	if sub == nil {
		return
	}
	s.active = &activeCapture{builder: jsontree.NewBuilder(), fn: sub.fn}
}

func (s *Scanner) finalizeCapture() {
	if v, ok := s.active.builder.Result().(*jsontree.Value); ok && v != nil {
		s.active.fn(v)
	}
	s.active = nil
}

func (s *Scanner) ParseBegin() {}
func (s *Scanner) ParseEnd()   {}

func (s *Scanner) IsCanceled() bool { return s.cancel() }

func (s *Scanner) BeginArray() {
	if s.active != nil {
		s.active.builder.BeginArray()
	}
}

func (s *Scanner) EndArray() {
	if s.active != nil {
		s.active.builder.EndArray()
	}
}

func (s *Scanner) BeginObject() {
	if s.active != nil {
		s.active.builder.BeginObject()
		return
	}
	s.levels = append(s.levels, &objLevel{seen: map[string]bool{}})
}

func (s *Scanner) EndObject() bool {
	if s.active != nil {
		return s.active.builder.EndObject()
	}
	lvl := s.levels[len(s.levels)-1]
	s.levels = s.levels[:len(s.levels)-1]
	return !lvl.dup
}

func (s *Scanner) BeginValueAtIndex(index int) {
	if s.active != nil {
		s.active.nestDepth++
		s.active.builder.BeginValueAtIndex(index)
		return
	}
	s.path = append(s.path, Segment{IsIndex: true, Index: index})
	s.tryStartCapture()
}

func (s *Scanner) EndValueAtIndex(index int) {
	if s.active != nil {
		if s.active.nestDepth == 0 {
			s.finalizeCapture()
			s.path = s.path[:len(s.path)-1]
			return
		}
		s.active.nestDepth--
		s.active.builder.EndValueAtIndex(index)
		return
	}
	s.path = s.path[:len(s.path)-1]
}

func (s *Scanner) BeginValueWithKey(key []byte, index int) {
	if s.active != nil {
		s.active.nestDepth++
		s.active.builder.BeginValueWithKey(key, index)
		return
	}
	s.path = append(s.path, Segment{Key: string(key)})
	s.tryStartCapture()
}

func (s *Scanner) EndValueWithKey(key []byte, index int) {
	if s.active != nil {
		if s.active.nestDepth == 0 {
			s.finalizeCapture()
			s.path = s.path[:len(s.path)-1]
			return
		}
		s.active.nestDepth--
		s.active.builder.EndValueWithKey(key, index)
		return
	}
	s.path = s.path[:len(s.path)-1]
}

func (s *Scanner) PushKey(key []byte) {
	if s.active != nil {
		s.active.builder.PushKey(key)
		return
	}
	lvl := s.levels[len(s.levels)-1]
	k := string(key)
	if lvl.seen[k] {
		lvl.dup = true
	}
	lvl.seen[k] = true
}

func (s *Scanner) PushString(v []byte) {
	if s.active != nil {
		s.active.builder.PushString(v)
	}
}

func (s *Scanner) ValueStringChunk(chunk []byte, hasMore bool) {
	if s.active != nil {
		s.active.builder.ValueStringChunk(chunk, hasMore)
	}
}

func (s *Scanner) PushNumber(n numbuilder.TaggedNumber) {
	if s.active != nil {
		s.active.builder.PushNumber(n)
	}
}

func (s *Scanner) PushBoolean(v bool) {
	if s.active != nil {
		s.active.builder.PushBoolean(v)
	}
}

func (s *Scanner) PushNull() {
	if s.active != nil {
		s.active.builder.PushNull()
	}
}

func (s *Scanner) Error(code actions.ErrorCode, msg string) {
	s.errCode = code
	s.errMsg = msg
}

func (s *Scanner) UnicodeNoncharacterHandling() unicode.FilterPolicy {
	return actions.DefaultFilterPolicy
}

func (s *Scanner) InputEncoding(name string) {}

func (s *Scanner) Result() any { return nil }
