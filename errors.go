package streamjson

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the taxonomy of ways a parse can fail.
// This package returns them wrapped in a *ParseError, which also carries
// the byte offset; test against them with errors.Is.
var (
	// ErrSyntax marks a malformed JSON byte sequence: an unexpected byte,
	// a bad escape, a bare control character in a string, a malformed
	// number or keyword, a mismatched brace/bracket, a duplicate comma,
	// or a missing colon.
	ErrSyntax = errors.New("streamjson: syntax error")
	// ErrUnexpectedEof is returned when the feeder declares the stream
	// done before the top-level value is complete, or while inside a
	// token.
	ErrUnexpectedEof = errors.New("streamjson: unexpected end of input")
	// ErrMaxDepthExceeded is returned when object/array nesting exceeds
	// the parser's configured MaxDepth.
	ErrMaxDepthExceeded = errors.New("streamjson: maximum nesting depth exceeded")
	// ErrLexemeTooLong is returned when a string, field name, or number
	// lexeme exceeds the configured MaxLexemeLength.
	ErrLexemeTooLong = errors.New("streamjson: lexeme exceeds configured length limit")
	// ErrInvalidUtf8 is returned by the string accessor when the decoded
	// buffer contents are not valid UTF-8 (e.g. raw non-UTF-8 bytes
	// inside a string literal, which the parser copies verbatim). Lone
	// surrogate escapes never get this far: Advance rejects them with
	// ErrSyntax.
	ErrInvalidUtf8 = errors.New("streamjson: invalid utf-8 in string value")
	// ErrNumberOutOfRange is returned by a numeric accessor when the
	// literal's magnitude exceeds the requested type's range.
	ErrNumberOutOfRange = errors.New("streamjson: number out of range")
	// ErrNotAnInteger is returned by an integer accessor when the staged
	// literal carries a decimal point or exponent.
	ErrNotAnInteger = errors.New("streamjson: value is not an integer literal")
	// ErrWrongEventKind is returned by AsInt, AsUint and AsFloat64 when
	// the most recently staged lexeme is a string or field name rather
	// than a number. The check looks at the staged lexeme, not at the
	// last event returned: after an event that carries no value the
	// accessors read the previous lexeme, and AsBytes and AsString never
	// return this error.
	ErrWrongEventKind = errors.New("streamjson: accessor does not match current event kind")
	// ErrIo is surfaced only by the streamio adapters when the
	// underlying reader fails.
	ErrIo = errors.New("streamjson: i/o error")
)

// ParseError is the concrete error type returned by Advance and by the
// value accessors. It carries the byte offset at which the failure was
// detected and wraps one of the sentinel errors above.
type ParseError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s at byte %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Err, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(offset int64, sentinel error, reason string) *ParseError {
	return &ParseError{Offset: offset, Reason: reason, Err: sentinel}
}
