package encoding

import (
	"bufio"
	"bytes"
	"io"
)

// bomCandidates is checked longest-BOM-first so the 4-byte UTF-32LE pattern
// (FF FE 00 00) is not mistaken for a UTF-16LE BOM (FF FE) followed by a NUL
// character.
var bomCandidates = []Form{UTF32BE, UTF32LE, UTF16BE, UTF16LE, UTF8}

// Sniff peeks up to 4 bytes of r looking for a byte order mark and returns
// the detected Form plus a Reader that replays any bytes it had to consume
// to look. If no BOM is recognized, it returns UTF8 (the JSON RFC's default
// when no external encoding information is available) and a reader that has
// not skipped anything.
func Sniff(r io.Reader) (Form, io.Reader, error) {
	br := bufio.NewReaderSize(r, 4)
	peek, err := br.Peek(4)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return UTF8, br, err
	}
	for _, f := range bomCandidates {
		bom := tags[f].BOM
		if len(peek) >= len(bom) && bytes.Equal(peek[:len(bom)], bom) {
			if _, err := br.Discard(len(bom)); err != nil {
				return UTF8, br, err
			}
			return f, br, nil
		}
	}
	return UTF8, br, nil
}
