// Package parser implements the recursive-descent JSON grammar: one
// method per grammar non-terminal, driving a caller-supplied
// actions.Actions through a single streaming parse of an io.Reader.
package parser
