package streamjson

// EventKind is the closed set of event variants the parser can emit.
// Tests depend on these names and on their relative ordering within a
// document, per the compliance suite.
type EventKind int8

const (
	// NeedMoreInput is a suspension signal, not a document-structural
	// event: the feeder is drained but the producer has not called
	// Done. The caller should push more bytes and call Advance again.
	NeedMoreInput EventKind = iota
	// EndOfStream is returned once the feeder is drained and done and
	// the automaton has accepted the top-level value. Repeated Advance
	// calls after EndOfStream keep returning EndOfStream.
	EndOfStream
	StartObject
	EndObject
	StartArray
	EndArray
	FieldName
	ValueString
	ValueInt
	ValueFloat
	ValueTrue
	ValueFalse
	ValueNull
)

var eventKindNames = [...]string{
	"NeedMoreInput",
	"EndOfStream",
	"StartObject",
	"EndObject",
	"StartArray",
	"EndArray",
	"FieldName",
	"ValueString",
	"ValueInt",
	"ValueFloat",
	"ValueTrue",
	"ValueFalse",
	"ValueNull",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "<unknown event>"
	}
	return eventKindNames[k]
}

// HasValue reports whether the event kind carries a payload inspectable
// through the parser's value accessors.
func (k EventKind) HasValue() bool {
	switch k {
	case FieldName, ValueString, ValueInt, ValueFloat:
		return true
	}
	return false
}

// Event is the tagged record returned by Parser.Advance. Offset is the
// byte offset, relative to the start of the document, of the first byte
// of the event's lexeme (or of the triggering byte for structural
// events). When Kind.HasValue() is true, the payload is available
// through the parser's AsBytes/AsString/AsInt/AsUint/AsFloat64 accessors
// until the next call to Advance.
type Event struct {
	Kind   EventKind
	Offset int64
}
