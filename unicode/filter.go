package unicode

// FilterPolicy selects which Unicode filter the parser applies to every
// non-ASCII character it decodes while scanning a JSON string.
type FilterPolicy int8

const (
	// PolicySignalError rejects matching code points outright.
	PolicySignalError FilterPolicy = iota
	// PolicySubstitute replaces matching code points with the filter's
	// replacement (by default U+FFFD).
	PolicySubstitute
	// PolicySkip consumes a matching code point from the input without
	// appending anything to the string staging buffer.
	PolicySkip
)

// Filter is a code-point predicate with a replacement policy, consulted
// after every successful decode of a non-ASCII character.
type Filter interface {
	// Match reports whether cp is of the kind this filter screens for.
	Match(cp CodePoint) bool
	// Replace reports whether a match should be replaced (true) or
	// rejected (false).
	Replace() bool
	// Replacement returns the substitute code point for a match, when
	// Replace() is true.
	Replacement(cp CodePoint) CodePoint
	// Policy reports which configured policy produced this filter, so the
	// parser can special-case PolicySkip (consume without emitting) without
	// a type switch on the concrete filter type.
	Policy() FilterPolicy
}

// Kind selects which class of code point a filter screens for, independent
// of what it does with a match (the Policy).
type Kind int8

const (
	// KindNone matches nothing; every code point passes through unchanged.
	KindNone Kind = iota
	// KindNoncharacter matches noncharacters only.
	KindNoncharacter
	// KindSurrogateOrNoncharacter matches surrogates (which should never
	// appear as a decoded code point from well-formed input, but can arise
	// from a substitution upstream) and noncharacters.
	KindSurrogateOrNoncharacter
	// KindNoncharacterOrNUL matches noncharacters and U+0000.
	KindNoncharacterOrNUL
)

type filter struct {
	kind        Kind
	policy      FilterPolicy
	replacement CodePoint
}

// NewFilter builds a Filter for the given predicate kind and policy. For
// PolicySubstitute, replacement is used in place of a match; zero selects
// ReplacementCharacter (U+FFFD).
func NewFilter(kind Kind, policy FilterPolicy, replacement CodePoint) Filter {
	if replacement == 0 {
		replacement = ReplacementCharacter
	}
	return &filter{kind: kind, policy: policy, replacement: replacement}
}

func (f *filter) Policy() FilterPolicy { return f.policy }

func (f *filter) Match(cp CodePoint) bool {
	switch f.kind {
	case KindNone:
		return false
	case KindNoncharacter:
		return IsNonCharacter(cp)
	case KindSurrogateOrNoncharacter:
		return IsSurrogate(cp) || IsNonCharacter(cp)
	case KindNoncharacterOrNUL:
		return cp == 0 || IsNonCharacter(cp)
	default:
		return false
	}
}

func (f *filter) Replace() bool {
	// PolicySkip also reports true here: the parser special-cases Policy()
	// == PolicySkip before it ever looks at Replace()/Replacement(), but a
	// Filter used directly (e.g. by ConvertOne or the unicode package's own
	// tests) should not signal "reject" for a Skip policy.
	return f.policy == PolicySubstitute || f.policy == PolicySkip
}

func (f *filter) Replacement(cp CodePoint) CodePoint {
	if f.policy == PolicySkip {
		return 0 // unused by callers that check Policy() == PolicySkip first
	}
	return f.replacement
}
