package streamio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hkruse/streamjson"
)

type asyncResult struct {
	data []byte
	err  error
}

// AsyncFeeder does the same job as SyncFeeder but its refill operation
// is a suspend/resume point keyed on a context.Context: cancelling the
// enclosing task aborts the in-flight refill without corrupting the
// parser. The read itself, not the byte, is the unit of atomicity — a
// cancelled Refill call never delivers a partial read; the pending read
// result (if any) simply waits for the next Refill call to claim it.
//
// Grounded on the context-scoped, cancellation-safe read/connection
// loops in _examples/tmaxmax-go-sse/server/connection.go and
// server/internal/client.go, generalized from an outbound SSE write
// loop to an inbound chunked-read loop.
type AsyncFeeder struct {
	*streamjson.PushFeeder
	results chan asyncResult
	stop    chan struct{}
}

// NewAsyncFeeder spawns a background goroutine that reads from r in
// bufSize chunks and hands each chunk to Refill's caller one at a time.
// The goroutine exits once r returns an error (including io.EOF) or
// Close is called.
func NewAsyncFeeder(r io.Reader, cfg streamjson.ParserConfig, bufSize int) *AsyncFeeder {
	if bufSize <= 0 {
		bufSize = 4096
	}
	f := &AsyncFeeder{
		PushFeeder: streamjson.NewPushFeederFromConfig(cfg),
		results:    make(chan asyncResult),
		stop:       make(chan struct{}),
	}
	go f.readLoop(r, bufSize)
	return f
}

func (f *AsyncFeeder) readLoop(r io.Reader, bufSize int) {
	for {
		buf := make([]byte, bufSize)
		n, err := r.Read(buf)
		var res asyncResult
		if n > 0 {
			res.data = buf[:n]
		}
		res.err = err
		select {
		case f.results <- res:
		case <-f.stop:
			return
		}
		if err != nil {
			return
		}
	}
}

// Refill waits for the next chunk from the background reader and pushes
// it into the underlying push feeder, or returns ctx.Err() if ctx is
// cancelled first. On cancellation the chunk (if the goroutine had
// already produced one) is not lost: it stays queued for the next
// Refill call.
func (f *AsyncFeeder) Refill(ctx context.Context) error {
	select {
	case res, ok := <-f.results:
		if !ok {
			return nil
		}
		if len(res.data) > 0 {
			pushed := f.PushFeeder.PushBytes(res.data)
			if pushed < len(res.data) {
				return fmt.Errorf("%w: push buffer full, drain events before refilling", ErrIo)
			}
		}
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				f.PushFeeder.Finish()
				return nil
			}
			return fmt.Errorf("%w: %v", ErrIo, res.err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the background reader goroutine. Safe to call more than
// once.
func (f *AsyncFeeder) Close() {
	select {
	case <-f.stop:
	default:
		close(f.stop)
	}
}

// DriveAsync is AsyncFeeder's counterpart to Drive: it calls
// parser.Advance, refilling via feeder.Refill(ctx) on NeedMoreInput, and
// invokes onEvent for every other event.
func DriveAsync(ctx context.Context, parser *streamjson.Parser, feeder *AsyncFeeder, onEvent func(streamjson.Event) error) error {
	for {
		ev, err := parser.Advance()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case streamjson.NeedMoreInput:
			if err := feeder.Refill(ctx); err != nil {
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
