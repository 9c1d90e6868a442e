package url

// Allocator is the pluggable memory source behind a Url's buffer,
// standing in for the original's virtual allocate/deallocate hooks
// (SPEC_FULL.md §9) as a small interface instead of a subclassing point.
type Allocator interface {
	// Get returns a byte slice with capacity for at least n bytes; its
	// length is unspecified and reset by the caller.
	Get(n int) []byte
	// Put returns a slice previously obtained from Get, allowing the
	// allocator to recycle it.
	Put([]byte)
}

// defaultAllocator is a thin wrapper over make, imposing no pooling; New
// uses it when no WithAllocator option is given.
type defaultAllocator struct{}

func (defaultAllocator) Get(n int) []byte { return make([]byte, n) }

func (defaultAllocator) Put([]byte) {}

// Option configures a Url at construction time.
type Option func(*config)

type config struct {
	alloc   Allocator
	initCap int
}

// WithAllocator sets the Allocator a Url uses for its backing buffer.
func WithAllocator(a Allocator) Option {
	return func(c *config) { c.alloc = a }
}

// WithInitialCapacity pre-reserves n bytes of buffer capacity, avoiding
// the first few growth reallocations for callers who know their expected
// URL size.
func WithInitialCapacity(n int) Option {
	return func(c *config) { c.initCap = n }
}
