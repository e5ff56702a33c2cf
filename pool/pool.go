// Package pool implements a tracked, bounded-lifetime memory arena.
//
// A Pool owns a set of Blocks. Blocks are allocated zero-filled, can be
// freed individually, and the whole pool can be released in one call
// (Clean, Destroy), which frees every block still outstanding. A Block is
// the owning handle that model types embed to get leak-checked,
// bulk-releasable storage.
package pool

// Block is a single allocation owned by a Pool. The zero Block is not
// valid; obtain one through Pool.Alloc.
type Block struct {
	pool *Pool
	prev *Block
	next *Block
	data []byte
}

// Pool is a single-owner arena. It is not safe for concurrent use: a pool
// and the objects that reference it are bound to one logical owner for
// their lifetime.
type Pool struct {
	first      *Block
	blockCount int
	bytesInUse int
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{}
}

// Alloc returns a new zero-filled block of exactly n bytes (n == 0 is
// legal and yields an empty, non-nil block). Alloc on a nil pool returns
// nil rather than panicking.
func (p *Pool) Alloc(n int) *Block {
	if p == nil {
		return nil
	}
	b := &Block{pool: p, data: make([]byte, n)}
	// insert at the head: most-recently-allocated-first.
	b.next = p.first
	if p.first != nil {
		p.first.prev = b
	}
	p.first = b
	p.blockCount++
	p.bytesInUse += n
	return b
}

// Free unlinks b from its pool, zeroes its header and data, and returns
// it to the platform. Free of a nil block is a no-op. Freeing the same
// block twice is a no-op (the block is detached from its pool on first
// free).
func (b *Block) Free() {
	if b == nil || b.pool == nil {
		return
	}
	p := b.pool
	if b.prev != nil {
		b.prev.next = b.next
	} else if p.first == b {
		p.first = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	p.blockCount--
	p.bytesInUse -= len(b.data)

	for i := range b.data {
		b.data[i] = 0
	}
	b.data = nil
	b.prev = nil
	b.next = nil
	b.pool = nil
}

// Size returns the number of bytes in b, or 0 for a nil block.
func (b *Block) Size() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes exposes the block's backing storage for callers that want to use
// the block itself as payload storage (rather than just a bookkeeping
// token).
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Pool returns the block's owning pool, or nil if the block has already
// been freed.
func (b *Block) Pool() *Pool {
	if b == nil {
		return nil
	}
	return b.pool
}

// Clean frees every block still live in the pool.
func (p *Pool) Clean() {
	if p == nil {
		return
	}
	for b := p.first; b != nil; {
		next := b.next
		// Free() mutates b.next via unlinking, so capture it first.
		b.pool = p
		b.Free()
		b = next
	}
	p.first = nil
	p.blockCount = 0
	p.bytesInUse = 0
}

// Destroy cleans the pool. After Destroy the pool must not be reused.
func (p *Pool) Destroy() {
	p.Clean()
}

// BlockCount returns the number of blocks currently outstanding.
func (p *Pool) BlockCount() int {
	if p == nil {
		return 0
	}
	return p.blockCount
}

// BytesInUse returns the sum of the sizes of all blocks currently
// outstanding.
func (p *Pool) BytesInUse() int {
	if p == nil {
		return 0
	}
	return p.bytesInUse
}

// Stats is a convenience combining BlockCount and BytesInUse in one call,
// as used by leak-checking tests.
func (p *Pool) Stats() (blocks, bytes int) {
	return p.BlockCount(), p.BytesInUse()
}
