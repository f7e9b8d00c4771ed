package streamjson

// Feeder is the contract between the event state machine and any byte
// source. The parser never calls back into caller I/O: it only asks a
// Feeder whether a byte is ready, takes it, and asks whether the
// producer has declared the stream complete.
//
// Invariant: once Done reports true and HasNext reports false, no
// further bytes will ever become available through this Feeder.
type Feeder interface {
	// HasNext reports whether at least one byte is available to consume.
	HasNext() bool
	// NextByte consumes and returns the next available byte. It must
	// only be called when HasNext reports true.
	NextByte() byte
	// Done reports whether the producer has declared the stream
	// complete. Done may be true while HasNext is still true: the
	// remaining buffered bytes must be drained first.
	Done() bool
}

// Pusher is implemented by feeders that accept bytes pushed by a
// producer. Only PushFeeder implements it directly; wrapping adapters
// (streamio.SyncFeeder, streamio.AsyncFeeder) hold one internally.
type Pusher interface {
	// PushBytes copies as many bytes from src into free buffer space as
	// fit and returns the count actually accepted. A return of zero
	// means the buffer is full and the caller must wait for the parser
	// to drain some of it (or enable buffer growth).
	PushBytes(src []byte) int
	// Finish marks the stream complete. Monotonic: once set it is never
	// cleared.
	Finish()
}
