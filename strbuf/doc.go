// Package strbuf implements the string staging buffer: a grow-on-
// demand scratch area where a decoded JSON string accumulates before being
// handed to the semantic-actions sink, with optional chunked flushing for
// large "data" strings and a hard prohibition on flushing "key" strings.
package strbuf
