package jsonpath

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchjson/jsoncore/jsontree"
	"github.com/couchjson/jsoncore/parser"
)

// ErrScan wraps a parse failure encountered while scanning for subscribed
// paths. Values already delivered to subscriber callbacks before the
// failure point stand; ErrScan only reports that the document as a whole
// was not well-formed.
var ErrScan = errors.New("jsonpath: scan failed")

// Scan drives one streaming parse of r, calling fn for every value found at
// path. It is a convenience wrapper around Scanner for the single-path
// case; use Scanner directly to subscribe to several paths in one pass.
func Scan(r io.Reader, path string, fn func(*jsontree.Value), opts ...parser.Option) error {
	s := NewScanner()
	if err := s.Subscribe(path, fn); err != nil {
		return err
	}
	return Run(r, s, opts...)
}

// Run drives one streaming parse of r through s, delivering every
// subscribed path's matches to its registered callback.
func Run(r io.Reader, s *Scanner, opts ...parser.Option) error {
	p := parser.New(s, opts...)
	if err := p.Parse(r); err != nil {
		code, msg := p.State()
		return fmt.Errorf("%w: %s (%s)", ErrScan, msg, code)
	}
	return nil
}

// ScanString is Scan over a string source.
func ScanString(s string, path string, fn func(*jsontree.Value), opts ...parser.Option) error {
	return Scan(strings.NewReader(s), path, fn, opts...)
}

// ScanBytes is Scan over a byte-slice source.
func ScanBytes(data []byte, path string, fn func(*jsontree.Value), opts ...parser.Option) error {
	return Scan(bytes.NewReader(data), path, fn, opts...)
}
