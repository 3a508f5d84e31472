// Package encoding describes the Unicode encoding forms a JSON document may
// arrive in (UTF-8, UTF-16, UTF-32, each with explicit or host endianness)
// and the low-level machinery — byte order marks, byte-swapping, and an
// endian-adapting cursor — needed to read code units out of any of them as
// if they were in host order.
//
// It does not know anything about code points or JSON grammar; see package
// unicode for code-point conversion and package parser for the grammar.
package encoding
