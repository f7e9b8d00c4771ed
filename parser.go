package streamjson

import "unicode/utf8"

// pstate is the automaton's "current state" slot, the second half of
// the parse stack alongside the container-mode markers. Names mirror
// the classical JSON_checker states this machine is ported from
// (_examples/mcvoid-json/parser.go), minus the comment and
// trailing-comma extensions that spec.md's Non-goals exclude, plus the
// states needed to make suspension resumable at any byte boundary.
type pstate int8

const (
	stStart pstate = iota // expecting the single top-level value
	stAfterValue
	stObjectOpen  // just saw '{'
	stObjectKey   // after ',' inside an object: a key string, no '}'
	stColon       // field name closed, expecting ':'
	stObjectValue // ':' seen, expecting a value
	stArrayOpen   // just saw '['
	stArrayNext   // after ',' inside an array: a value, no ']'
	stString
	stEscape
	stUnicode1
	stUnicode2
	stUnicode3
	stUnicode4
	stMinus
	stZero
	stInt
	stFracStart
	stFracDigits
	stExpStart
	stExpSign
	stExpDigits
	stTrue1
	stTrue2
	stTrue3
	stFalse1
	stFalse2
	stFalse3
	stFalse4
	stNull1
	stNull2
	stNull3
)

// Parser is the reactive event-producing JSON parser: the pushdown
// automaton of spec.md §4.1 driven one byte at a time from a Feeder.
// A Parser owns its feeder, value buffer, and parse stack exclusively
// and is single-consumer: Advance must be called sequentially.
type Parser struct {
	feeder Feeder
	state  pstate
	stack  *parseStack
	value  valueBuffer

	offset      int64 // count of bytes consumed so far
	curOffset   int64 // offset of the byte currently being stepped
	lexemeStart int64

	hasHighSurrogate bool
	highSurrogate    rune
	hexAccum         uint16

	pending  []Event
	err      error
	accepted bool
}

// New creates a Parser reading from feeder with default configuration.
func New(feeder Feeder) *Parser {
	cfg := DefaultParserConfig()
	return NewWithConfig(feeder, cfg)
}

// NewWithConfig creates a Parser reading from feeder with an explicit
// configuration. Zero-valued fields in cfg are replaced with their
// documented defaults.
func NewWithConfig(feeder Feeder, cfg ParserConfig) *Parser {
	cfg.setDefaults()
	p := &Parser{
		feeder: feeder,
		stack:  newParseStack(cfg.MaxDepth + 1), // +1 for the modeDone sentinel
	}
	p.value.maxLen = cfg.MaxLexemeLength
	return p
}

// Advance is the parser's single public operation: it returns the next
// Event, or an error. EventKind NeedMoreInput signals the feeder is
// drained but not done; EventKind EndOfStream signals acceptance.
// Once an error is returned, every subsequent call returns the same
// error.
func (p *Parser) Advance() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	for {
		if len(p.pending) > 0 {
			e := p.pending[0]
			p.pending = p.pending[1:]
			return e, nil
		}
		if p.accepted {
			return Event{Kind: EndOfStream, Offset: p.offset}, nil
		}
		if !p.feeder.HasNext() {
			if !p.feeder.Done() {
				return Event{Kind: NeedMoreInput, Offset: p.offset}, nil
			}
			// Drained and done: either finish a trailing number
			// lexeme that only whitespace/EOF would have terminated,
			// or check final acceptance.
			if p.atNumberTerminableState() {
				p.finalizeNumber()
				p.state = stAfterValue
				continue
			}
			if p.state == stAfterValue && p.stack.depth() == 0 {
				p.accepted = true
				continue
			}
			return Event{}, p.fail(p.offset, ErrUnexpectedEof, "")
		}
		b := p.feeder.NextByte()
		p.curOffset = p.offset
		p.offset++
		if err := p.step(b); err != nil {
			return Event{}, err
		}
	}
}

func (p *Parser) fail(offset int64, sentinel error, reason string) error {
	err := newParseError(offset, sentinel, reason)
	p.err = err
	return err
}

func (p *Parser) emit(kind EventKind, offset int64) {
	p.pending = append(p.pending, Event{Kind: kind, Offset: offset})
}

func isWS(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isNumberTerminator(b byte) bool {
	return isWS(b) || b == ',' || b == '}' || b == ']'
}

func (p *Parser) atNumberTerminableState() bool {
	switch p.state {
	case stZero, stInt, stFracDigits, stExpDigits:
		return true
	}
	return false
}

func (p *Parser) finalizeNumber() {
	kind := ValueInt
	if p.value.numberHasDotExp {
		kind = ValueFloat
	}
	p.emit(kind, p.lexemeStart)
}

// step advances the automaton by exactly one byte, queuing zero or more
// events into p.pending. A byte can queue two events (e.g. a bare
// number immediately followed by a closing brace).
func (p *Parser) step(b byte) error {
	switch p.state {
	case stStart:
		return p.startValue(b)
	case stAfterValue:
		return p.stepAfterValue(b)
	case stObjectOpen:
		return p.stepObjectOpen(b)
	case stObjectKey:
		return p.stepObjectKey(b)
	case stColon:
		return p.stepColon(b)
	case stObjectValue:
		return p.stepObjectValue(b)
	case stArrayOpen:
		return p.stepArrayOpen(b)
	case stArrayNext:
		return p.stepArrayNext(b)
	case stString:
		return p.stepString(b)
	case stEscape:
		return p.stepEscape(b)
	case stUnicode1, stUnicode2, stUnicode3, stUnicode4:
		return p.stepUnicode(b)
	case stMinus:
		return p.stepMinus(b)
	case stZero:
		return p.stepZero(b)
	case stInt:
		return p.stepInt(b)
	case stFracStart:
		return p.stepFracStart(b)
	case stFracDigits:
		return p.stepFracDigits(b)
	case stExpStart:
		return p.stepExpStart(b)
	case stExpSign:
		return p.stepExpSign(b)
	case stExpDigits:
		return p.stepExpDigits(b)
	case stTrue1, stTrue2, stTrue3:
		return p.stepKeyword(b, "true"[p.state-stTrue1+1:], ValueTrue)
	case stFalse1, stFalse2, stFalse3, stFalse4:
		return p.stepKeyword(b, "false"[p.state-stFalse1+1:], ValueFalse)
	case stNull1, stNull2, stNull3:
		return p.stepKeyword(b, "null"[p.state-stNull1+1:], ValueNull)
	}
	return p.reject()
}

func (p *Parser) reject() error {
	return p.fail(p.curOffset, ErrSyntax, "unexpected byte")
}

// startValue dispatches the byte that begins any JSON value: object,
// array, string, number, or keyword literal.
func (p *Parser) startValue(b byte) error {
	switch {
	case isWS(b):
		return nil
	case b == '{':
		if err := p.stack.push(modeKey); err != nil {
			return p.fail(p.curOffset, ErrMaxDepthExceeded, "")
		}
		p.emit(StartObject, p.curOffset)
		p.state = stObjectOpen
		return nil
	case b == '[':
		if err := p.stack.push(modeArray); err != nil {
			return p.fail(p.curOffset, ErrMaxDepthExceeded, "")
		}
		p.emit(StartArray, p.curOffset)
		p.state = stArrayOpen
		return nil
	case b == '"':
		p.lexemeStart = p.curOffset
		p.value.reset(false)
		p.state = stString
		return nil
	case b == '-':
		p.lexemeStart = p.curOffset
		p.value.reset(true)
		if err := p.value.appendByte(b); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
		p.state = stMinus
		return nil
	case b == '0':
		p.lexemeStart = p.curOffset
		p.value.reset(true)
		_ = p.value.appendByte(b)
		p.state = stZero
		return nil
	case b >= '1' && b <= '9':
		p.lexemeStart = p.curOffset
		p.value.reset(true)
		_ = p.value.appendByte(b)
		p.state = stInt
		return nil
	case b == 't':
		p.lexemeStart = p.curOffset
		p.state = stTrue1
		return nil
	case b == 'f':
		p.lexemeStart = p.curOffset
		p.state = stFalse1
		return nil
	case b == 'n':
		p.lexemeStart = p.curOffset
		p.state = stNull1
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepObjectOpen(b byte) error {
	switch {
	case isWS(b):
		return nil
	case b == '}':
		p.stack.pop() // modeKey
		p.emit(EndObject, p.curOffset)
		p.state = stAfterValue
		return nil
	case b == '"':
		p.lexemeStart = p.curOffset
		p.value.reset(false)
		p.state = stString
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepObjectKey(b byte) error {
	switch {
	case isWS(b):
		return nil
	case b == '"':
		p.lexemeStart = p.curOffset
		p.value.reset(false)
		p.state = stString
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepColon(b byte) error {
	switch {
	case isWS(b):
		return nil
	case b == ':':
		p.stack.replaceTop(modeObject)
		p.state = stObjectValue
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepObjectValue(b byte) error {
	if isWS(b) {
		return nil
	}
	return p.startValue(b)
}

func (p *Parser) stepArrayOpen(b byte) error {
	switch {
	case isWS(b):
		return nil
	case b == ']':
		p.stack.pop() // modeArray
		p.emit(EndArray, p.curOffset)
		p.state = stAfterValue
		return nil
	default:
		return p.startValue(b)
	}
}

func (p *Parser) stepArrayNext(b byte) error {
	if isWS(b) {
		return nil
	}
	return p.startValue(b)
}

func (p *Parser) stepAfterValue(b byte) error {
	if isWS(b) {
		return nil
	}
	top := p.stack.top()
	switch b {
	case ',':
		switch top {
		case modeArray:
			p.state = stArrayNext
		case modeObject:
			p.stack.replaceTop(modeKey)
			p.state = stObjectKey
		default:
			return p.reject()
		}
		return nil
	case '}':
		if top != modeObject {
			return p.reject()
		}
		p.stack.pop()
		p.emit(EndObject, p.curOffset)
		p.state = stAfterValue
		return nil
	case ']':
		if top != modeArray {
			return p.reject()
		}
		p.stack.pop()
		p.emit(EndArray, p.curOffset)
		p.state = stAfterValue
		return nil
	default:
		return p.reject()
	}
}

// --- string & escapes ---

func (p *Parser) stepString(b byte) error {
	switch {
	case b == '"':
		wasKey := p.stack.top() == modeKey
		if p.hasHighSurrogate {
			return p.fail(p.curOffset, ErrSyntax, "unpaired high surrogate")
		}
		if wasKey {
			p.emit(FieldName, p.lexemeStart)
			p.state = stColon
		} else {
			p.emit(ValueString, p.lexemeStart)
			p.state = stAfterValue
		}
		return nil
	case b == '\\':
		p.state = stEscape
		return nil
	case b < 0x20:
		return p.fail(p.curOffset, ErrSyntax, "raw control character in string")
	default:
		if p.hasHighSurrogate {
			return p.fail(p.curOffset, ErrSyntax, "unpaired high surrogate")
		}
		if err := p.value.appendByte(b); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
		return nil
	}
}

func (p *Parser) stepEscape(b byte) error {
	if p.hasHighSurrogate && b != 'u' {
		return p.fail(p.curOffset, ErrSyntax, "unpaired high surrogate")
	}
	var decoded byte
	switch b {
	case '"':
		decoded = '"'
	case '\\':
		decoded = '\\'
	case '/':
		decoded = '/'
	case 'b':
		decoded = '\b'
	case 'f':
		decoded = '\f'
	case 'n':
		decoded = '\n'
	case 'r':
		decoded = '\r'
	case 't':
		decoded = '\t'
	case 'u':
		p.hexAccum = 0
		p.state = stUnicode1
		return nil
	default:
		return p.fail(p.curOffset, ErrSyntax, "invalid escape sequence")
	}
	if err := p.value.appendByte(decoded); err != nil {
		return p.fail(p.curOffset, ErrLexemeTooLong, "")
	}
	p.state = stString
	return nil
}

func hexVal(b byte) (uint16, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint16(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint16(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint16(b-'A') + 10, true
	}
	return 0, false
}

func (p *Parser) stepUnicode(b byte) error {
	v, ok := hexVal(b)
	if !ok {
		return p.fail(p.curOffset, ErrSyntax, "invalid unicode escape hex digit")
	}
	p.hexAccum = p.hexAccum<<4 | v
	switch p.state {
	case stUnicode1:
		p.state = stUnicode2
		return nil
	case stUnicode2:
		p.state = stUnicode3
		return nil
	case stUnicode3:
		p.state = stUnicode4
		return nil
	}
	// stUnicode4: the full code unit is assembled.
	unit := rune(p.hexAccum)
	switch {
	case p.hasHighSurrogate:
		if unit < 0xDC00 || unit > 0xDFFF {
			return p.fail(p.curOffset, ErrSyntax, "high surrogate not followed by low surrogate")
		}
		cp := 0x10000 + (p.highSurrogate-0xD800)*0x400 + (unit - 0xDC00)
		p.hasHighSurrogate = false
		if err := p.appendRune(cp); err != nil {
			return err
		}
	case unit >= 0xD800 && unit <= 0xDBFF:
		p.hasHighSurrogate = true
		p.highSurrogate = unit
	case unit >= 0xDC00 && unit <= 0xDFFF:
		return p.fail(p.curOffset, ErrSyntax, "lone low surrogate")
	default:
		if err := p.appendRune(unit); err != nil {
			return err
		}
	}
	p.state = stString
	return nil
}

func (p *Parser) appendRune(r rune) error {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for i := 0; i < n; i++ {
		if err := p.value.appendByte(buf[i]); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
	}
	return nil
}

// --- numbers ---

func (p *Parser) stepMinus(b byte) error {
	switch {
	case b == '0':
		_ = p.value.appendByte(b)
		p.state = stZero
		return nil
	case b >= '1' && b <= '9':
		_ = p.value.appendByte(b)
		p.state = stInt
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepZero(b byte) error {
	switch {
	case isNumberTerminator(b):
		p.finalizeNumber()
		p.state = stAfterValue
		return p.stepAfterValue(b)
	case b == '.':
		_ = p.value.appendByte(b)
		p.value.numberHasDotExp = true
		p.state = stFracStart
		return nil
	case b == 'e' || b == 'E':
		_ = p.value.appendByte(b)
		p.value.numberHasDotExp = true
		p.state = stExpStart
		return nil
	case isDigit(b):
		return p.fail(p.curOffset, ErrSyntax, "leading zero in number")
	default:
		return p.reject()
	}
}

func (p *Parser) stepInt(b byte) error {
	switch {
	case isDigit(b):
		if err := p.value.appendByte(b); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
		return nil
	case isNumberTerminator(b):
		p.finalizeNumber()
		p.state = stAfterValue
		return p.stepAfterValue(b)
	case b == '.':
		_ = p.value.appendByte(b)
		p.value.numberHasDotExp = true
		p.state = stFracStart
		return nil
	case b == 'e' || b == 'E':
		_ = p.value.appendByte(b)
		p.value.numberHasDotExp = true
		p.state = stExpStart
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepFracStart(b byte) error {
	if isDigit(b) {
		_ = p.value.appendByte(b)
		p.state = stFracDigits
		return nil
	}
	return p.reject()
}

func (p *Parser) stepFracDigits(b byte) error {
	switch {
	case isDigit(b):
		if err := p.value.appendByte(b); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
		return nil
	case isNumberTerminator(b):
		p.finalizeNumber()
		p.state = stAfterValue
		return p.stepAfterValue(b)
	case b == 'e' || b == 'E':
		_ = p.value.appendByte(b)
		p.state = stExpStart
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepExpStart(b byte) error {
	switch {
	case b == '+' || b == '-':
		_ = p.value.appendByte(b)
		p.state = stExpSign
		return nil
	case isDigit(b):
		_ = p.value.appendByte(b)
		p.state = stExpDigits
		return nil
	default:
		return p.reject()
	}
}

func (p *Parser) stepExpSign(b byte) error {
	if isDigit(b) {
		_ = p.value.appendByte(b)
		p.state = stExpDigits
		return nil
	}
	return p.reject()
}

func (p *Parser) stepExpDigits(b byte) error {
	switch {
	case isDigit(b):
		if err := p.value.appendByte(b); err != nil {
			return p.fail(p.curOffset, ErrLexemeTooLong, "")
		}
		return nil
	case isNumberTerminator(b):
		p.finalizeNumber()
		p.state = stAfterValue
		return p.stepAfterValue(b)
	default:
		return p.reject()
	}
}

// --- keyword literals ---

// stepKeyword advances through the remaining bytes of "true", "false",
// or "null". rest is the suffix still expected (e.g. "rue" right after
// matching the leading 't').
func (p *Parser) stepKeyword(b byte, rest string, kind EventKind) error {
	if b != rest[0] {
		return p.reject()
	}
	if len(rest) > 1 {
		p.state++
		return nil
	}
	p.emit(kind, p.lexemeStart)
	p.state = stAfterValue
	return nil
}
