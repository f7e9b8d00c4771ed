package streamio

import "github.com/hkruse/streamjson"

// NewSliceFeeder wraps an in-memory byte slice as a streamjson.Feeder:
// the whole slice is pushed up front and the feeder is immediately
// marked done. No goroutine, no blocking — for callers that already
// have the entire document in memory and want the parser's event
// surface without the ceremony of a reader-backed feeder.
func NewSliceFeeder(data []byte) *streamjson.PushFeeder {
	f := streamjson.NewPushFeeder(len(data))
	f.PushBytes(data)
	f.Finish()
	return f
}

// NewStringFeeder is NewSliceFeeder for a string, avoiding a caller-side
// copy via an explicit []byte(s) conversion.
func NewStringFeeder(data string) *streamjson.PushFeeder {
	return NewSliceFeeder([]byte(data))
}
