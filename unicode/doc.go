// Package unicode implements the code-point conversion matrix (decode one
// character from any of UTF-8/UTF-16/UTF-32, encode one character into any
// of them, in strict or unsafe mode) plus the Unicode filter policies that
// the JSON parser consults after every decode of a non-ASCII character.
//
// It is deliberately independent of JSON grammar: everything here is pure
// Unicode mechanics, grounded in the Unicode Standard's definitions of code
// point, surrogate, noncharacter, and scalar value.
package unicode
