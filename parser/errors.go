package parser

import "github.com/couchjson/jsoncore/actions"

// ErrorCode is an alias of actions.ErrorCode so callers of this package
// never need to import actions directly just to inspect (*Parser).State.
type ErrorCode = actions.ErrorCode

// Re-exported sentinel errors, one per ErrorCode, so package parser is a
// self-sufficient errors.Is target.
var (
	ErrUnexpectedEnd            = actions.ErrUnexpectedEnd
	ErrEmptyText                = actions.ErrEmptyText
	ErrExpectedArrayOrObject    = actions.ErrExpectedArrayOrObject
	ErrExpectedStringKey        = actions.ErrExpectedStringKey
	ErrExpectedTokenKeyValueSep = actions.ErrExpectedTokenKeyValueSep
	ErrExpectedTokenObjectEnd   = actions.ErrExpectedTokenObjectEnd
	ErrExpectedTokenArrayEnd    = actions.ErrExpectedTokenArrayEnd
	ErrExpectedValue            = actions.ErrExpectedValue
	ErrDuplicateKey             = actions.ErrDuplicateKey
	ErrBadNumber                = actions.ErrBadNumber
	ErrNumberOutOfRange         = actions.ErrNumberOutOfRange
	ErrInvalidEscapeSequence    = actions.ErrInvalidEscapeSequence
	ErrInvalidHexValue          = actions.ErrInvalidHexValue
	ErrExpectedLowSurrogate     = actions.ErrExpectedLowSurrogate
	ErrExpectedHighSurrogate    = actions.ErrExpectedHighSurrogate
	ErrInvalidUnicode           = actions.ErrInvalidUnicode
	ErrIllformedUnicodeSequence = actions.ErrIllformedUnicodeSequence
	ErrControlCharNotAllowed    = actions.ErrControlCharNotAllowed
	ErrUnicodeNulNotAllowed     = actions.ErrUnicodeNulNotAllowed
	ErrUnicodeNonCharacter      = actions.ErrUnicodeNonCharacter
	ErrUnicodeRejectedByFilter  = actions.ErrUnicodeRejectedByFilter
	ErrKeyStringTooLarge        = actions.ErrKeyStringTooLarge
	ErrNestingTooDeep           = actions.ErrNestingTooDeep
	ErrCanceled                 = actions.ErrCanceled
	ErrInternalLogicError       = actions.ErrInternalLogicError
)

const (
	NoError                  = actions.NoError
	UnexpectedEnd            = actions.UnexpectedEnd
	EmptyText                = actions.EmptyText
	ExpectedArrayOrObject    = actions.ExpectedArrayOrObject
	ExpectedStringKey        = actions.ExpectedStringKey
	ExpectedTokenKeyValueSep = actions.ExpectedTokenKeyValueSep
	ExpectedTokenObjectEnd   = actions.ExpectedTokenObjectEnd
	ExpectedTokenArrayEnd    = actions.ExpectedTokenArrayEnd
	ExpectedValue            = actions.ExpectedValue
	DuplicateKey             = actions.DuplicateKey
	BadNumber                = actions.BadNumber
	NumberOutOfRange         = actions.NumberOutOfRange
	InvalidEscapeSequence    = actions.InvalidEscapeSequence
	InvalidHexValue          = actions.InvalidHexValue
	ExpectedLowSurrogate     = actions.ExpectedLowSurrogate
	ExpectedHighSurrogate    = actions.ExpectedHighSurrogate
	InvalidUnicode           = actions.InvalidUnicode
	IllformedUnicodeSequence = actions.IllformedUnicodeSequence
	ControlCharNotAllowed    = actions.ControlCharNotAllowed
	UnicodeNulNotAllowed     = actions.UnicodeNulNotAllowed
	UnicodeNonCharacter      = actions.UnicodeNonCharacter
	UnicodeRejectedByFilter  = actions.UnicodeRejectedByFilter
	KeyStringTooLarge        = actions.KeyStringTooLarge
	NestingTooDeep           = actions.NestingTooDeep
	Canceled                 = actions.Canceled
	InternalLogicError       = actions.InternalLogicError
)
