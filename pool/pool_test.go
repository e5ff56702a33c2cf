package pool

import "testing"

func TestAllocZeroFilled(t *testing.T) {
	p := New()
	b := p.Alloc(16)
	for i, v := range b.Bytes() {
		if v != 0 {
			t.Fatalf("byte %d not zero-filled: %d", i, v)
		}
	}
}

func TestCountersTrackLiveBlocks(t *testing.T) {
	p := New()
	a := p.Alloc(10)
	bl := p.Alloc(5)
	_ = p.Alloc(0)

	blocks, bytes := p.Stats()
	if blocks != 3 || bytes != 15 {
		t.Fatalf("got blocks=%d bytes=%d, want 3/15", blocks, bytes)
	}

	a.Free()
	blocks, bytes = p.Stats()
	if blocks != 2 || bytes != 5 {
		t.Fatalf("after free: got blocks=%d bytes=%d, want 2/5", blocks, bytes)
	}

	bl.Free()
	blocks, bytes = p.Stats()
	if blocks != 1 || bytes != 0 {
		t.Fatalf("after second free: got blocks=%d bytes=%d, want 1/0", blocks, bytes)
	}
}

func TestPoolCleanReturnsToZero(t *testing.T) {
	p := New()
	p.Alloc(100)
	p.Alloc(200)
	p.Clean()
	blocks, bytes := p.Stats()
	if blocks != 0 || bytes != 0 {
		t.Fatalf("after Clean: got blocks=%d bytes=%d, want 0/0", blocks, bytes)
	}
}

func TestFreeZeroesData(t *testing.T) {
	p := New()
	b := p.Alloc(8)
	copy(b.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	data := b.Bytes()
	b.Free()
	for i, v := range data {
		if v != 0 {
			t.Fatalf("byte %d not zeroed by Free: %d", i, v)
		}
	}
	if b.Size() != 0 {
		t.Fatalf("freed block should report size 0, got %d", b.Size())
	}
}

func TestNilPoolAndBlockAreNoOps(t *testing.T) {
	var p *Pool
	if p.Alloc(10) != nil {
		t.Fatal("Alloc on nil pool should return nil")
	}
	if p.BlockCount() != 0 || p.BytesInUse() != 0 {
		t.Fatal("nil pool counters should be zero")
	}

	var b *Block
	b.Free() // must not panic
	if b.Size() != 0 {
		t.Fatal("nil block size should be 0")
	}
}

func TestDoubleFreeIsNoOp(t *testing.T) {
	p := New()
	b := p.Alloc(4)
	b.Free()
	b.Free() // must not panic or double-decrement
	blocks, bytes := p.Stats()
	if blocks != 0 || bytes != 0 {
		t.Fatalf("got blocks=%d bytes=%d after double free, want 0/0", blocks, bytes)
	}
}

func TestMostRecentFirstOrdering(t *testing.T) {
	p := New()
	first := p.Alloc(1)
	_ = first
	second := p.Alloc(2)
	if p.first != second {
		t.Fatal("pool.first should be the most recently allocated block")
	}
}
