package streamjson

// PushFeeder is the canonical Feeder: a bounded circular window that a
// producer fills with PushBytes and that the parser drains one byte at a
// time via NextByte. The streamio adapters build on it:
// streamio.SyncFeeder and streamio.AsyncFeeder embed a PushFeeder, and
// streamio.NewSliceFeeder returns one already filled.
//
// Invariants: read <= write (mod capacity accounting done via counts,
// not pointer arithmetic), drained == (unread count == 0), done is
// monotonic, and PushBytes never silently drops bytes: if the free
// region is smaller than len(src) it copies only what fits and returns
// that count.
type PushFeeder struct {
	buf       []byte
	readPos   int
	writePos  int
	unread    int
	done      bool
	allowGrow bool
	maxCap    int
}

// NewPushFeeder creates a PushFeeder with the given initial capacity. A
// capacity of zero falls back to a practical default of 4096 bytes.
func NewPushFeeder(initialCap int) *PushFeeder {
	if initialCap <= 0 {
		initialCap = 4096
	}
	return &PushFeeder{
		buf:       make([]byte, initialCap),
		allowGrow: true,
		maxCap:    1 << 20,
	}
}

// NewPushFeederFromConfig builds a PushFeeder honoring a ParserConfig's
// buffer sizing and growth policy. The streamio adapters use this so a
// single ParserConfig governs both the automaton's limits and the
// feeder's memory behavior.
func NewPushFeederFromConfig(cfg ParserConfig) *PushFeeder {
	cfg.setDefaults()
	f := NewPushFeeder(cfg.InitialBufferCap)
	f.allowGrow = cfg.AllowBufferGrowth
	f.maxCap = cfg.MaxBufferCap
	return f
}

// HasNext implements Feeder.
func (f *PushFeeder) HasNext() bool { return f.unread > 0 }

// NextByte implements Feeder.
func (f *PushFeeder) NextByte() byte {
	b := f.buf[f.readPos]
	f.readPos++
	if f.readPos == len(f.buf) {
		f.readPos = 0
	}
	f.unread--
	return b
}

// Done implements Feeder: reports whether the producer has called
// Finish.
func (f *PushFeeder) Done() bool { return f.done }

// Finish implements Pusher: marks the stream complete. Monotonic.
func (f *PushFeeder) Finish() { f.done = true }

// free returns the number of bytes of unused capacity.
func (f *PushFeeder) free() int { return len(f.buf) - f.unread }

// PushBytes implements Pusher. It copies as many bytes from src as fit
// into the free region of the ring, growing the ring first if growth is
// enabled and the whole of src still would not fit.
func (f *PushFeeder) PushBytes(src []byte) int {
	if f.allowGrow && len(src) > f.free() {
		f.growToFit(len(src))
	}
	n := len(src)
	if room := f.free(); n > room {
		n = room
	}
	if n == 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		f.buf[f.writePos] = src[i]
		f.writePos++
		if f.writePos == len(f.buf) {
			f.writePos = 0
		}
	}
	f.unread += n
	return n
}

// growToFit grows the ring to at least hold `need` additional bytes on
// top of what's already buffered, capped at maxCap. Growth linearizes
// the ring into a fresh slice (read cursor reset to 0).
func (f *PushFeeder) growToFit(need int) {
	target := len(f.buf)
	for target-f.unread < need && target < f.maxCap {
		if target == 0 {
			target = 4096
			continue
		}
		target *= 2
	}
	if target > f.maxCap {
		target = f.maxCap
	}
	if target <= len(f.buf) {
		return
	}
	linear := make([]byte, target)
	n := f.copyUnreadInto(linear)
	f.buf = linear
	f.readPos = 0
	f.writePos = n
	if f.writePos == len(f.buf) {
		f.writePos = 0
	}
}

// copyUnreadInto copies the unread region into dst starting at index 0
// and returns the number of bytes copied.
func (f *PushFeeder) copyUnreadInto(dst []byte) int {
	if f.unread == 0 {
		return 0
	}
	if f.readPos+f.unread <= len(f.buf) {
		return copy(dst, f.buf[f.readPos:f.readPos+f.unread])
	}
	n := copy(dst, f.buf[f.readPos:])
	n += copy(dst[n:], f.buf[:f.unread-n])
	return n
}

// Cap reports the feeder's current ring capacity, useful for callers
// inspecting memory use (e.g. the 2GiB streaming scenario in spec.md §8).
func (f *PushFeeder) Cap() int { return len(f.buf) }

// Unread reports how many bytes are currently buffered and unconsumed.
func (f *PushFeeder) Unread() int { return f.unread }
