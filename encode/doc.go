// Package encode implements the string encoder: given a Unicode
// sequence in some source encoding, it produces a JSON-escaped string in a
// target encoding.
package encode
