package parser

import (
	"errors"
	"io"

	"github.com/couchjson/jsoncore/actions"
	"github.com/couchjson/jsoncore/encoding"
	"github.com/couchjson/jsoncore/numbuilder"
	"github.com/couchjson/jsoncore/strbuf"
	"github.com/couchjson/jsoncore/unicode"
)

// Parser drives actions.Actions through one streaming parse of a JSON
// document. A Parser is not safe for concurrent
// use, but independent Parser instances (each with its own Actions) may
// run on separate goroutines concurrently.
type Parser struct {
	act actions.Actions
	cfg config

	cur     *encoding.Cursor
	srcForm encoding.Form
	filter  unicode.Filter

	depth int
	num   numbuilder.Builder

	errCode actions.ErrorCode
	errMsg  string

	havePeek bool
	peekCP   unicode.CodePoint
	peekEOF  bool
	peekErr  error
}

// New builds a Parser bound to act, the semantic-actions consumer for
// every subsequent call to Parse.
func New(act actions.Actions, opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Parser{act: act, cfg: cfg}
}

// Reset clears error state, buffers, and the number builder, so the
// Parser can be reused for another Parse call.
func (p *Parser) Reset() {
	p.cur = nil
	p.depth = 0
	p.errCode = actions.NoError
	p.errMsg = ""
	p.havePeek = false
	p.num.Reset()
}

// State reports the error code and message of the most recent Parse call,
// or (NoError, "") if it succeeded or has not run yet.
func (p *Parser) State() (ErrorCode, string) {
	return p.errCode, p.errMsg
}

// Parse drives the grammar over r, reporting events to the Actions given
// to New. It returns the first error encountered, or nil on a clean parse.
func (p *Parser) Parse(r io.Reader) error {
	p.Reset()

	form := p.cfg.encoding
	src := r
	if !p.cfg.encodingSet {
		detected, replay, err := encoding.Sniff(r)
		if err != nil {
			return err
		}
		form = detected
		src = replay
	}
	p.srcForm = form.Resolve()
	p.cur = encoding.NewCursor(src, p.srcForm)
	p.filter = unicode.NewFilter(unicode.KindNoncharacter, p.act.UnicodeNoncharacterHandling(), 0)

	p.act.InputEncoding(actions.FormName(p.srcForm))
	if p.act.IsCanceled() {
		return p.fail(Canceled)
	}
	p.act.ParseBegin()

	if err := p.parseText(); err != nil {
		return err
	}
	p.act.ParseEnd()
	return nil
}

func (p *Parser) fail(code actions.ErrorCode) error {
	if p.errCode == actions.NoError {
		p.errCode = code
		p.errMsg = code.String()
		p.act.Error(code, p.errMsg)
	}
	return code.SentinelError()
}

func (p *Parser) mapBufErr(err error) error {
	if errors.Is(err, strbuf.ErrKeyTooLarge) {
		return p.fail(KeyStringTooLarge)
	}
	return p.fail(InternalLogicError)
}

func (p *Parser) checkCanceled() error {
	if p.act.IsCanceled() {
		return p.fail(Canceled)
	}
	return nil
}

// peekChar/nextChar give the grammar functions one character of lookahead,
// on top of the code-unit lookahead encoding.Cursor already provides —
// a "character" here may span several code units (a UTF-8 multi-byte
// sequence, a UTF-16 surrogate pair).
func (p *Parser) peekChar() (unicode.CodePoint, bool, error) {
	if !p.havePeek {
		p.peekCP, p.peekEOF, p.peekErr = p.decodeChar()
		p.havePeek = true
	}
	return p.peekCP, p.peekEOF, p.peekErr
}

func (p *Parser) nextChar() (unicode.CodePoint, bool, error) {
	cp, eof, err := p.peekChar()
	p.havePeek = false
	return cp, eof, err
}

// decodeChar reads exactly one character from the cursor, already mapped
// to a parser ErrorCode (via fail) on failure. eof==true, err==nil means a
// clean end of input with nothing left to decode.
func (p *Parser) decodeChar() (unicode.CodePoint, bool, error) {
	switch p.cur.Tag().CodeUnitSize {
	case 1:
		return p.decodeCharUTF8()
	case 2:
		return p.decodeCharUTF16()
	case 4:
		return p.decodeCharUTF32()
	default:
		return 0, false, p.fail(InternalLogicError)
	}
}

func (p *Parser) cursorErr(err error) error {
	if errors.Is(err, encoding.ErrUnexpectedEOF) {
		return p.fail(UnexpectedEnd)
	}
	return p.fail(IllformedUnicodeSequence)
}

func (p *Parser) decodeCharUTF8() (unicode.CodePoint, bool, error) {
	u, ok, err := p.cur.Next()
	if err != nil {
		return 0, false, p.cursorErr(err)
	}
	if !ok {
		return 0, true, nil
	}
	lead := byte(u)
	trails := unicode.TrailCount(lead)
	if trails < 0 {
		return 0, false, p.fail(IllformedUnicodeSequence)
	}
	if trails == 0 {
		return unicode.CodePoint(lead), false, nil
	}
	var buf [4]byte
	buf[0] = lead
	for i := 0; i < trails; i++ {
		u2, ok2, err2 := p.cur.Next()
		if err2 != nil {
			return 0, false, p.cursorErr(err2)
		}
		if !ok2 {
			return 0, false, p.fail(UnexpectedEnd)
		}
		buf[i+1] = byte(u2)
	}
	cp, _, err3 := unicode.DecodeUTF8Strict(buf[:trails+1])
	if err3 != nil {
		return 0, false, p.fail(IllformedUnicodeSequence)
	}
	return cp, false, nil
}

func (p *Parser) decodeCharUTF16() (unicode.CodePoint, bool, error) {
	u, ok, err := p.cur.Next()
	if err != nil {
		return 0, false, p.cursorErr(err)
	}
	if !ok {
		return 0, true, nil
	}
	var units [2]uint16
	units[0] = uint16(u)
	n := 1
	if unicode.IsHighSurrogate(unicode.CodePoint(u)) {
		u2, ok2, err2 := p.cur.Next()
		if err2 != nil {
			return 0, false, p.cursorErr(err2)
		}
		if !ok2 {
			return 0, false, p.fail(UnexpectedEnd)
		}
		units[1] = uint16(u2)
		n = 2
	}
	cp, _, err3 := unicode.DecodeUTF16Strict(units[:n])
	if err3 != nil {
		return 0, false, p.fail(IllformedUnicodeSequence)
	}
	return cp, false, nil
}

func (p *Parser) decodeCharUTF32() (unicode.CodePoint, bool, error) {
	u, ok, err := p.cur.Next()
	if err != nil {
		return 0, false, p.cursorErr(err)
	}
	if !ok {
		return 0, true, nil
	}
	cp, err3 := unicode.DecodeUTF32Strict(u)
	if err3 != nil {
		return 0, false, p.fail(IllformedUnicodeSequence)
	}
	return cp, false, nil
}

// expect consumes the next character, failing with code if it is not c.
func (p *Parser) expect(c byte, code actions.ErrorCode) error {
	cp, eof, err := p.nextChar()
	if err != nil {
		return err
	}
	if eof || cp != unicode.CodePoint(c) {
		return p.fail(code)
	}
	return nil
}

func (p *Parser) skipWS() error {
	for {
		cp, eof, err := p.peekChar()
		if err != nil {
			return err
		}
		if eof {
			return nil
		}
		if cp == 0x20 || cp == 0x09 || cp == 0x0A || cp == 0x0D {
			p.nextChar()
			continue
		}
		return nil
	}
}

func (p *Parser) parseText() error {
	if err := p.skipWS(); err != nil {
		return err
	}
	cp, eof, err := p.peekChar()
	if err != nil {
		return err
	}
	if eof {
		return p.fail(EmptyText)
	}
	if cp != '{' && cp != '[' {
		return p.fail(ExpectedArrayOrObject)
	}
	if err := p.parseValueDispatch(); err != nil {
		return err
	}
	if p.cfg.skipTrailingWhitespace {
		if err := p.skipWS(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseValueDispatch() error {
	cp, eof, err := p.peekChar()
	if err != nil {
		return err
	}
	if eof {
		return p.fail(UnexpectedEnd)
	}
	switch {
	case cp == '{':
		return p.parseObject()
	case cp == '[':
		return p.parseArray()
	case cp == '"':
		val, chunked, err := p.parseStringRaw(strbuf.ModeData)
		if err != nil {
			return err
		}
		if !chunked {
			p.act.PushString(val)
		}
		return nil
	case cp == '-' || (cp >= '0' && cp <= '9'):
		return p.parseNumber()
	case cp == 't':
		return p.parseLiteral("true", func() { p.act.PushBoolean(true) })
	case cp == 'f':
		return p.parseLiteral("false", func() { p.act.PushBoolean(false) })
	case cp == 'n':
		return p.parseLiteral("null", func() { p.act.PushNull() })
	default:
		return p.fail(ExpectedValue)
	}
}

func (p *Parser) parseLiteral(lit string, onMatch func()) error {
	for i := 0; i < len(lit); i++ {
		cp, eof, err := p.nextChar()
		if err != nil {
			return err
		}
		if eof || cp != unicode.CodePoint(lit[i]) {
			return p.fail(ExpectedValue)
		}
	}
	onMatch()
	return nil
}

func (p *Parser) parseArray() error {
	p.nextChar() // consume '['
	p.act.BeginArray()
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.cfg.maxDepth {
		return p.fail(NestingTooDeep)
	}

	if err := p.skipWS(); err != nil {
		return err
	}
	cp, eof, err := p.peekChar()
	if err != nil {
		return err
	}
	if eof {
		return p.fail(UnexpectedEnd)
	}

	if cp == ']' {
		p.nextChar()
	} else {
		index := 0
		for {
			if err := p.checkCanceled(); err != nil {
				return err
			}
			p.act.BeginValueAtIndex(index)
			if err := p.parseValueDispatch(); err != nil {
				return err
			}
			p.act.EndValueAtIndex(index)
			index++

			if err := p.skipWS(); err != nil {
				return err
			}
			cp, eof, err := p.peekChar()
			if err != nil {
				return err
			}
			if eof {
				return p.fail(UnexpectedEnd)
			}
			if cp == ',' {
				p.nextChar()
				if err := p.skipWS(); err != nil {
					return err
				}
				continue
			}
			if cp == ']' {
				p.nextChar()
				break
			}
			return p.fail(ExpectedTokenArrayEnd)
		}
	}
	p.act.EndArray()
	return nil
}

func (p *Parser) parseObject() error {
	p.nextChar() // consume '{'
	p.act.BeginObject()
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.cfg.maxDepth {
		return p.fail(NestingTooDeep)
	}

	if err := p.skipWS(); err != nil {
		return err
	}
	cp, eof, err := p.peekChar()
	if err != nil {
		return err
	}
	if eof {
		return p.fail(UnexpectedEnd)
	}

	if cp == '}' {
		p.nextChar()
	} else {
		index := 0
		for {
			if err := p.checkCanceled(); err != nil {
				return err
			}
			cp, eof, err := p.peekChar()
			if err != nil {
				return err
			}
			if eof {
				return p.fail(UnexpectedEnd)
			}
			if cp != '"' {
				return p.fail(ExpectedStringKey)
			}
			key, _, err := p.parseStringRaw(strbuf.ModeKey)
			if err != nil {
				return err
			}

			if err := p.skipWS(); err != nil {
				return err
			}
			if err := p.expect(':', ExpectedTokenKeyValueSep); err != nil {
				return err
			}
			if err := p.skipWS(); err != nil {
				return err
			}

			p.act.PushKey(key)
			p.act.BeginValueWithKey(key, index)
			if err := p.parseValueDispatch(); err != nil {
				return err
			}
			p.act.EndValueWithKey(key, index)
			index++

			if err := p.skipWS(); err != nil {
				return err
			}
			cp, eof, err = p.peekChar()
			if err != nil {
				return err
			}
			if eof {
				return p.fail(UnexpectedEnd)
			}
			if cp == ',' {
				p.nextChar()
				if err := p.skipWS(); err != nil {
					return err
				}
				continue
			}
			if cp == '}' {
				p.nextChar()
				break
			}
			return p.fail(ExpectedTokenObjectEnd)
		}
	}
	if !p.act.EndObject() {
		return p.fail(DuplicateKey)
	}
	return nil
}

// parseStringRaw parses one string literal, assuming the caller has
// already peeked (without consuming) a leading '"'. It returns the
// complete value and chunked=false when the string was small enough to
// stay in one buffer, or chunked=true (value==nil) when it was flushed in
// pieces via actions.Actions.ValueStringChunk as it was scanned.
func (p *Parser) parseStringRaw(mode strbuf.Mode) (value []byte, chunked bool, err error) {
	p.nextChar() // consume opening '"'

	allowPartial := mode == strbuf.ModeData
	buf := strbuf.New(encoding.UTF8, mode, allowPartial, func(chunk []byte, hasMore bool) error {
		chunked = true
		cp := append([]byte(nil), chunk...)
		p.act.ValueStringChunk(cp, hasMore)
		return nil
	})

	for {
		cp, eof, derr := p.nextChar()
		if derr != nil {
			return nil, false, derr
		}
		if eof {
			return nil, false, p.fail(UnexpectedEnd)
		}
		if cp == '"' {
			break
		}
		if cp == '\\' {
			if err := p.parseEscape(buf); err != nil {
				return nil, false, err
			}
			continue
		}
		if cp < 0x20 {
			return nil, false, p.fail(ControlCharNotAllowed)
		}
		if cp < 0x80 {
			if err := buf.Extend(1); err != nil {
				return nil, false, p.mapBufErr(err)
			}
			buf.AppendASCII(byte(cp))
			continue
		}
		if err := p.appendFiltered(buf, cp); err != nil {
			return nil, false, err
		}
	}

	if chunked {
		if err := buf.Flush(false); err != nil {
			return nil, true, err
		}
		return nil, true, nil
	}
	return append([]byte(nil), buf.Bytes()...), false, nil
}

// appendFiltered applies the configured Unicode filter to cp (a non-ASCII
// character, decoded either from the source encoding directly or from a
// combined \u surrogate pair) and appends it to buf unless the filter's
// policy is PolicySkip.
func (p *Parser) appendFiltered(buf *strbuf.Buffer, cp unicode.CodePoint) error {
	if p.filter != nil && p.filter.Match(cp) {
		switch p.filter.Policy() {
		case unicode.PolicySignalError:
			return p.fail(p.filterErrorCode(cp))
		case unicode.PolicySkip:
			return nil
		case unicode.PolicySubstitute:
			cp = p.filter.Replacement(cp)
		}
	}
	if err := buf.Extend(4); err != nil {
		return p.mapBufErr(err)
	}
	if err := buf.AppendCodePoint(cp); err != nil {
		return p.fail(IllformedUnicodeSequence)
	}
	return nil
}

func (p *Parser) filterErrorCode(cp unicode.CodePoint) actions.ErrorCode {
	switch {
	case cp == 0:
		return UnicodeNulNotAllowed
	case unicode.IsNonCharacter(cp):
		return UnicodeNonCharacter
	default:
		return UnicodeRejectedByFilter
	}
}

func (p *Parser) appendEscapedASCII(buf *strbuf.Buffer, c byte) error {
	if err := buf.Extend(1); err != nil {
		return p.mapBufErr(err)
	}
	buf.AppendASCII(c)
	return nil
}

func (p *Parser) parseEscape(buf *strbuf.Buffer) error {
	cp, eof, err := p.nextChar()
	if err != nil {
		return err
	}
	if eof {
		return p.fail(UnexpectedEnd)
	}
	switch cp {
	case '"':
		return p.appendEscapedASCII(buf, '"')
	case '\\':
		return p.appendEscapedASCII(buf, '\\')
	case '/':
		return p.appendEscapedASCII(buf, '/')
	case 'b':
		return p.appendEscapedASCII(buf, 0x08)
	case 'f':
		return p.appendEscapedASCII(buf, 0x0C)
	case 'n':
		return p.appendEscapedASCII(buf, 0x0A)
	case 'r':
		return p.appendEscapedASCII(buf, 0x0D)
	case 't':
		return p.appendEscapedASCII(buf, 0x09)
	case 'u':
		return p.parseUnicodeEscape(buf)
	default:
		return p.fail(InvalidEscapeSequence)
	}
}

func (p *Parser) parseUnicodeEscape(buf *strbuf.Buffer) error {
	v1, err := p.parseHex4()
	if err != nil {
		return err
	}
	cp1 := unicode.CodePoint(v1)

	if unicode.IsHighSurrogate(cp1) {
		if err := p.expect('\\', ExpectedLowSurrogate); err != nil {
			return err
		}
		if err := p.expect('u', ExpectedLowSurrogate); err != nil {
			return err
		}
		v2, err := p.parseHex4()
		if err != nil {
			return err
		}
		cp2 := unicode.CodePoint(v2)
		if !unicode.IsLowSurrogate(cp2) {
			return p.fail(ExpectedLowSurrogate)
		}
		return p.appendFiltered(buf, unicode.CombineSurrogatePair(cp1, cp2))
	}
	if unicode.IsLowSurrogate(cp1) {
		return p.fail(ExpectedHighSurrogate)
	}
	if cp1 == 0 {
		return p.fail(UnicodeNulNotAllowed)
	}
	if cp1 < 0x80 {
		return p.appendEscapedASCII(buf, byte(cp1))
	}
	return p.appendFiltered(buf, cp1)
}

func (p *Parser) parseHex4() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		cp, eof, err := p.nextChar()
		if err != nil {
			return 0, err
		}
		if eof {
			return 0, p.fail(UnexpectedEnd)
		}
		digit, ok := hexDigitValue(cp)
		if !ok {
			return 0, p.fail(InvalidHexValue)
		}
		v = v<<4 | uint32(digit)
	}
	return v, nil
}

func hexDigitValue(cp unicode.CodePoint) (uint32, bool) {
	switch {
	case cp >= '0' && cp <= '9':
		return uint32(cp - '0'), true
	case cp >= 'a' && cp <= 'f':
		return uint32(cp-'a') + 10, true
	case cp >= 'A' && cp <= 'F':
		return uint32(cp-'A') + 10, true
	default:
		return 0, false
	}
}

func (p *Parser) parseNumber() error {
	p.num.Reset()

	cp, _, _ := p.peekChar()
	if cp == '-' {
		p.nextChar()
		p.num.PushSign(true)
	} else {
		p.num.PushSign(false)
	}

	cp, eof, err := p.nextChar()
	if err != nil {
		return err
	}
	if eof || cp < '0' || cp > '9' {
		return p.fail(BadNumber)
	}
	if cp == '0' {
		p.num.PushIntegerStart('0')
		p.num.IntegerEnd()
		// A leading zero must stand alone: "01" is not a valid JSON number.
		if next, nEOF, nErr := p.peekChar(); nErr != nil {
			return nErr
		} else if !nEOF && next >= '0' && next <= '9' {
			return p.fail(BadNumber)
		}
	} else {
		p.num.PushIntegerStart(byte(cp))
		if err := p.consumeDigits(); err != nil {
			return err
		}
		p.num.IntegerEnd()
	}

	cp, eof, err = p.peekChar()
	if err != nil {
		return err
	}
	if !eof && cp == '.' {
		p.nextChar()
		p.num.PushDecimalPoint()
		cp, eof, err = p.nextChar()
		if err != nil {
			return err
		}
		if eof || cp < '0' || cp > '9' {
			return p.fail(BadNumber)
		}
		p.num.PushDigit(byte(cp))
		if err := p.consumeDigits(); err != nil {
			return err
		}
		p.num.FractionalEnd()
	}

	cp, eof, err = p.peekChar()
	if err != nil {
		return err
	}
	if !eof && (cp == 'e' || cp == 'E') {
		p.nextChar()
		p.num.PushExponentIndicator(byte(cp))

		var sign byte
		cp, eof, err = p.peekChar()
		if err != nil {
			return err
		}
		if !eof && (cp == '+' || cp == '-') {
			p.nextChar()
			sign = byte(cp)
		}

		cp, eof, err = p.nextChar()
		if err != nil {
			return err
		}
		if eof || cp < '0' || cp > '9' {
			return p.fail(BadNumber)
		}
		if sign != 0 {
			p.num.PushExponentStart(sign)
			p.num.PushDigit(byte(cp))
		} else {
			p.num.PushExponentStart(byte(cp))
		}
		if err := p.consumeDigits(); err != nil {
			return err
		}
		p.num.ExponentEnd()
	}

	tn := p.num.TaggedNumber()
	if tn.Kind == numbuilder.KindInvalid {
		return p.fail(BadNumber)
	}
	p.act.PushNumber(tn)
	return nil
}

// consumeDigits appends every consecutive ASCII digit from the input to
// the currently open number-builder range.
func (p *Parser) consumeDigits() error {
	for {
		cp, eof, err := p.peekChar()
		if err != nil {
			return err
		}
		if eof || cp < '0' || cp > '9' {
			return nil
		}
		p.nextChar()
		p.num.PushDigit(byte(cp))
	}
}
