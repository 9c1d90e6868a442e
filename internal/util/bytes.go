package util

import (
	"bytes"
	"math"
	"sync"
)

var bytesBufPool = &sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 64)) },
}

// GetBytesBuffer returns a pooled *bytes.Buffer, reset and ready to use.
func GetBytesBuffer() *bytes.Buffer {
	return bytesBufPool.Get().(*bytes.Buffer) //nolint:forcetypeassert
}

// FreeBytesBuffer returns b to the pool. Buffers that grew unusually large
// are dropped instead of pooled, so one big URL doesn't inflate the pool forever.
func FreeBytesBuffer(b *bytes.Buffer) {
	b.Reset()
	if b.Cap() > math.MaxUint16 {
		return
	}
	bytesBufPool.Put(b)
}
