package url

import "braces.dev/errtrace"

// maxURLLen is the implementation's maximum representable URL length,
// guarding resize against pathological allocation requests.
const maxURLLen = 1<<31 - 2

// buffer owns the contiguous, null-terminated backing store for a Url. It
// implements the splice/resize engine from SPEC_FULL.md §4.4: growth is
// geometric and amortized O(1), and a failed grow leaves the buffer
// byte-for-byte unchanged (strong exception safety via scratch-then-swap).
type buffer struct {
	data  []byte // len(data) == logical length + 1 (trailing NUL)
	alloc Allocator
}

func newBuffer(alloc Allocator) *buffer {
	if alloc == nil {
		alloc = defaultAllocator{}
	}
	b := &buffer{alloc: alloc}
	b.data = alloc.Get(1)
	b.data = b.data[:1]
	b.data[0] = 0
	return b
}

func (b *buffer) len() int { return len(b.data) - 1 }

func (b *buffer) cap() int { return cap(b.data) }

func (b *buffer) bytes() []byte { return b.data[:len(b.data)-1] }

func (b *buffer) cstr() []byte { return b.data }

// growTo ensures capacity for a logical length of n+1 bytes (including
// NUL), growing geometrically to at least double the current capacity.
func (b *buffer) growTo(n int) error {
	if n+1 > maxURLLen {
		return errtrace.Wrap(ErrTooLarge)
	}
	if cap(b.data) >= n+1 {
		return nil
	}
	newCap := cap(b.data) * 2
	if newCap < n+1 {
		newCap = n + 1
	}
	scratch := b.alloc.Get(newCap)
	scratch = scratch[:len(b.data)]
	copy(scratch, b.data)
	old := b.data
	b.data = scratch
	b.alloc.Put(old)
	return nil
}

// splice replaces the byte range [from, to) of the logical buffer with a
// region of newLen bytes (contents are left uninitialized; the caller
// writes them after splice returns) and keeps the trailing NUL in place.
// It returns the delta in logical length (newLen - (to-from)).
func (b *buffer) splice(from, to, newLen int) (int, error) {
	oldTotal := b.len()
	oldLen := to - from
	delta := newLen - oldLen
	newTotal := oldTotal + delta
	if err := b.growTo(newTotal); err != nil {
		return 0, errtrace.Wrap(err)
	}

	// suffixLen counts bytes from `to` through the trailing NUL, at their
	// pre-splice positions.
	suffixLen := oldTotal - to + 1

	if delta > 0 {
		// grow the backing slice first so the shifted-up suffix fits
		b.data = b.data[:newTotal+1]
	}
	suffix := make([]byte, suffixLen)
	copy(suffix, b.data[to:to+suffixLen])
	copy(b.data[to+delta:to+delta+suffixLen], suffix)
	if delta < 0 {
		b.data = b.data[:newTotal+1]
	}
	return delta, nil
}

func (b *buffer) write(at int, p []byte) {
	copy(b.data[at:], p)
}

// clear resets the buffer to empty, retaining capacity.
func (b *buffer) clear() {
	b.data = b.data[:1]
	b.data[0] = 0
}

// reserve grows capacity to at least n+1 bytes without changing length.
func (b *buffer) reserve(n int) error {
	return errtrace.Wrap(b.growTo(max(n, b.len())))
}
