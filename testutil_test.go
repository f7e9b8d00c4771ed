package streamjson_test

import (
	"fmt"

	"github.com/hkruse/streamjson"
)

// recordEvent renders an Event (plus its payload, when it carries one)
// to a short comparable string, so tests can assert on whole event
// sequences without hand-rolling a struct comparison per case.
func recordEvent(p *streamjson.Parser, ev streamjson.Event) string {
	switch ev.Kind {
	case streamjson.FieldName:
		s, err := p.AsString()
		if err != nil {
			return "FieldName:<err:" + err.Error() + ">"
		}
		return "FieldName:" + s
	case streamjson.ValueString:
		s, err := p.AsString()
		if err != nil {
			return "ValueString:<err:" + err.Error() + ">"
		}
		return "ValueString:" + s
	case streamjson.ValueInt:
		n, err := p.AsInt(64)
		if err != nil {
			return "ValueInt:<err:" + err.Error() + ">"
		}
		return fmt.Sprintf("ValueInt:%d", n)
	case streamjson.ValueFloat:
		f, err := p.AsFloat64()
		if err != nil {
			return "ValueFloat:<err:" + err.Error() + ">"
		}
		return fmt.Sprintf("ValueFloat:%v", f)
	default:
		return ev.Kind.String()
	}
}

// collectAll feeds the whole of data through a fresh parser in a single
// push and returns the rendered event sequence, stopping at EndOfStream
// or the first error.
func collectAll(data []byte) ([]string, error) {
	return collectChunked(data, len(data)+1)
}

// collectChunked feeds data through a fresh parser in chunkSize-byte
// pieces (chunkSize<=0 means "all at once"), pushing more whenever the
// parser reports NeedMoreInput, and returns the rendered event
// sequence.
func collectChunked(data []byte, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		chunkSize = len(data) + 1
	}
	feeder := streamjson.NewPushFeeder(16)
	p := streamjson.New(feeder)

	var out []string
	pos := 0
	for {
		ev, err := p.Advance()
		if err != nil {
			return out, err
		}
		switch ev.Kind {
		case streamjson.EndOfStream:
			return out, nil
		case streamjson.NeedMoreInput:
			if pos >= len(data) {
				feeder.Finish()
				continue
			}
			end := pos + chunkSize
			if end > len(data) {
				end = len(data)
			}
			n := feeder.PushBytes(data[pos:end])
			pos += n
			if pos >= len(data) {
				feeder.Finish()
			}
		default:
			out = append(out, recordEvent(p, ev))
		}
	}
}
