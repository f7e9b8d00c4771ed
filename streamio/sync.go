// Package streamio holds the concrete I/O adapters spec.md §4.2 and §6
// describe as external collaborators: they wrap a synchronous buffered
// reader, an asynchronous (context-cancellable) reader, or an in-memory
// slice, and bridge it to the streamjson.Feeder contract the core
// parser depends on. None of this package's types are part of the core
// state machine; streamjson never imports it.
package streamio

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/hkruse/streamjson"
)

// ErrIo wraps a failure from the underlying reader. It is the same value
// as streamjson.ErrIo, so errors.Is against either detects it.
var ErrIo = streamjson.ErrIo

// SyncFeeder wraps a blocking io.Reader: each time the caller observes
// streamjson.NeedMoreInput, it calls Refill, which performs exactly one
// blocking Read and refills the underlying push feeder. This mirrors
// the bufio.Reader-backed blocking loop in
// _examples/mcvoid-json/parser.go's Parse function, generalized from a
// rune-at-a-time read to a chunked refill of a streamjson.PushFeeder.
type SyncFeeder struct {
	*streamjson.PushFeeder
	r       *bufio.Reader
	scratch []byte
	ioErr   error
}

// NewSyncFeeder wraps r using the buffer sizing and growth policy from
// cfg.
func NewSyncFeeder(r io.Reader, cfg streamjson.ParserConfig) *SyncFeeder {
	return &SyncFeeder{
		PushFeeder: streamjson.NewPushFeederFromConfig(cfg),
		r:          bufio.NewReader(r),
		scratch:    make([]byte, 4096),
	}
}

// Refill performs one blocking read and pushes whatever bytes it
// returns into the push feeder. It marks the feeder done on io.EOF.
// Call it whenever the parser reports streamjson.NeedMoreInput.
func (f *SyncFeeder) Refill() error {
	if f.ioErr != nil {
		return f.ioErr
	}
	n, err := f.r.Read(f.scratch)
	if n > 0 {
		pushed := f.PushFeeder.PushBytes(f.scratch[:n])
		if pushed < n {
			// The push buffer is full and not growable; the caller
			// must drain parser events before refilling again.
			return fmt.Errorf("%w: push buffer full, drain events before refilling", ErrIo)
		}
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			f.PushFeeder.Finish()
			return nil
		}
		f.ioErr = fmt.Errorf("%w: %v", ErrIo, err)
		return f.ioErr
	}
	return nil
}

// Drive repeatedly calls parser.Advance, refilling from the reader
// whenever it reports NeedMoreInput, and invokes onEvent for every
// other event. It returns when onEvent returns a non-nil error, when
// the parser errors, or once streamjson.EndOfStream is delivered.
func Drive(parser *streamjson.Parser, feeder *SyncFeeder, onEvent func(streamjson.Event) error) error {
	for {
		ev, err := parser.Advance()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case streamjson.NeedMoreInput:
			if err := feeder.Refill(); err != nil {
				return err
			}
		case streamjson.EndOfStream:
			return onEvent(ev)
		default:
			if err := onEvent(ev); err != nil {
				return err
			}
		}
	}
}
