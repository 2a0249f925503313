package zeroproto

import (
	"math/bits"
	"sync"
)

// Size-tiered buffer pools for MessageBuilder scratch buffers. Buffers are
// pooled in size classes: 64, 256, 1024, 4096, 16384, 65536 bytes.
var bufferPools = [6]sync.Pool{
	{New: func() any { return make([]byte, 0, 64) }},
	{New: func() any { return make([]byte, 0, 256) }},
	{New: func() any { return make([]byte, 0, 1024) }},
	{New: func() any { return make([]byte, 0, 4096) }},
	{New: func() any { return make([]byte, 0, 16384) }},
	{New: func() any { return make([]byte, 0, 65536) }},
}

// bufferSizes maps pool index to capacity.
var bufferSizes = [6]int{64, 256, 1024, 4096, 16384, 65536}

// poolIndex returns the pool index for a given size hint, or -1 if the
// hint is too large to be pooled.
func poolIndex(size int) int {
	switch {
	case size <= 64:
		return 0
	case size <= 256:
		return 1
	case size <= 1024:
		return 2
	case size <= 4096:
		return 3
	case size <= 16384:
		return 4
	case size <= 65536:
		return 5
	default:
		return -1
	}
}

// GetBuffer gets a buffer from the appropriate size-tiered pool, reset to
// zero length but retaining its capacity. Returns a freshly allocated
// buffer, never pooled, if sizeHint exceeds 64KB.
func GetBuffer(sizeHint int) []byte {
	idx := poolIndex(sizeHint)
	if idx < 0 {
		return make([]byte, 0, sizeHint)
	}
	buf := bufferPools[idx].Get().([]byte)
	return buf[:0]
}

// PutBuffer returns a buffer to the appropriate size-tiered pool. Buffers
// larger than 64KB are not pooled and left for the garbage collector.
func PutBuffer(buf []byte) {
	c := cap(buf)
	if c > 65536 {
		return
	}
	if idx := poolIndex(c); idx >= 0 {
		bufferPools[idx].Put(buf[:0])
	}
}

// BufferPoolStats reports the configured size classes, for tuning and
// diagnostics.
type BufferPoolStats struct {
	SizeClasses  []int
	TotalClasses int
}

// GetBufferPoolStats returns the current buffer pool configuration.
func GetBufferPoolStats() BufferPoolStats {
	return BufferPoolStats{SizeClasses: bufferSizes[:], TotalClasses: len(bufferSizes)}
}

// OptimalBufferSize rounds dataSize up to the nearest pool size class, or to
// the next power of two beyond the largest pooled class.
func OptimalBufferSize(dataSize int) int {
	if dataSize <= 0 {
		return 64
	}
	if dataSize > 65536 {
		return 1 << bits.Len(uint(dataSize-1))
	}
	for _, size := range bufferSizes {
		if dataSize <= size {
			return size
		}
	}
	return dataSize
}
