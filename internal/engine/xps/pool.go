package xps

import "sync"

// maxPooledBuffer is the largest buffer capacity kept for reuse.
const maxPooledBuffer = 64 * 1024

// BufferPool recycles byte buffers used while encoding.
// It is safe for concurrent use.
type BufferPool struct {
	pool sync.Pool
}

// DefaultPool is the pool used by Encoder when none is configured.
var DefaultPool = NewBufferPool()

// NewBufferPool creates an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, 256)
				return &b
			},
		},
	}
}

// Get returns an empty buffer with at least the given capacity.
func (p *BufferPool) Get(capacity int) *[]byte {
	b := p.pool.Get().(*[]byte)
	if cap(*b) < capacity {
		*b = make([]byte, 0, capacity)
	}
	*b = (*b)[:0]
	return b
}

// Put returns a buffer to the pool. Oversized buffers are dropped.
// The buffer must not be used after calling Put.
func (p *BufferPool) Put(b *[]byte) {
	if b == nil || cap(*b) > maxPooledBuffer {
		return
	}
	*b = (*b)[:0]
	p.pool.Put(b)
}
