// Package urlutil provides optional pooling support for Url buffers,
// grounded on the sync.Pool pattern used throughout
// github.com/ghettovoice/gosip/internal/util for *bytes.Buffer and
// *strings.Builder reuse.
package urlutil

import (
	"math"
	"sync"
)

var bufPool = sync.Pool{
	New: func() any { return make([]byte, 0, 64) },
}

// pooledAllocator recycles backing byte slices through a sync.Pool. It
// is unsafe to use on a Url whose borrowed component slices (Bytes,
// EncodedHost, etc.) are retained past the call that produced them, since
// a later Put may hand the same backing array to an unrelated Url.
type pooledAllocator struct{}

func (pooledAllocator) Get(n int) []byte {
	b := bufPool.Get().([]byte) //nolint:forcetypeassert
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}

func (pooledAllocator) Put(b []byte) {
	if cap(b) > math.MaxUint16 {
		return
	}
	bufPool.Put(b[:0]) //nolint:staticcheck
}

// Pooled returns an Allocator-compatible value backed by a shared
// sync.Pool, for callers that parse/discard many short-lived URLs in a
// hot loop and commit to not retaining borrowed component slices across
// calls. See SPEC_FULL.md §12.4.
func Pooled() interface {
	Get(int) []byte
	Put([]byte)
} {
	return pooledAllocator{}
}
