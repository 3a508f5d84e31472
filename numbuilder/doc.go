// Package numbuilder implements the number builder: it accepts a
// structured stream of digit-range events from the parser and produces both
// a verbatim byte-for-byte view of the literal and a normalized numeric
// form (mantissa, exponent, sign) or a tagged int64/float64 result.
package numbuilder
