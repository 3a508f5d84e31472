package parser

import (
	"github.com/couchjson/jsoncore/encoding"
)

// DefaultMaxDepth is the default recursion depth cap (array/object
// nesting levels) before the parser surfaces ErrNestingTooDeep.
const DefaultMaxDepth = 512

// Option configures a Parser at construction time.
type Option func(*config)

type config struct {
	maxDepth               int
	encoding               encoding.Form
	encodingSet            bool
	skipTrailingWhitespace bool
}

func defaultConfig() config {
	return config{
		maxDepth:               DefaultMaxDepth,
		skipTrailingWhitespace: true,
	}
}

// WithMaxDepth overrides the recursion depth cap.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithEncoding sets the input encoding explicitly, bypassing BOM sniffing.
// Use this when the caller already knows the encoding (e.g. it came from a
// protocol that specifies it out of band).
func WithEncoding(f encoding.Form) Option {
	return func(c *config) {
		c.encoding = f
		c.encodingSet = true
	}
}

// WithSkipTrailingWhitespace controls whether trailing whitespace after the
// top-level value is consumed. Defaults to true.
func WithSkipTrailingWhitespace(skip bool) Option {
	return func(c *config) { c.skipTrailingWhitespace = skip }
}
