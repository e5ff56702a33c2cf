package model

import (
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

// valueSlotSize is the nominal per-element storage charged against the
// pool when an Array grows, standing in for sizeof(Value) in a systems
// implementation.
const valueSlotSize = 16

// Array is an ordered, growable sequence of Values, pool-owned.
type Array struct {
	p     *pool.Pool
	block *pool.Block
	items []Value
	count int
}

// NewArray creates an array with the given initial capacity (capacities
// below 1 fall back to a small default).
func NewArray(p *pool.Pool, capacity int) *Array {
	if capacity < 1 {
		capacity = 4
	}
	return &Array{
		p:     p,
		block: p.Alloc(capacity * valueSlotSize),
		items: make([]Value, capacity),
	}
}

// Count returns the number of elements currently stored.
func (a *Array) Count() int { return a.count }

// Capacity returns the array's current backing capacity.
func (a *Array) Capacity() int { return len(a.items) }

func (a *Array) growTo(newCap int) {
	newBlock := a.p.Alloc(newCap * valueSlotSize)
	newItems := make([]Value, newCap)
	copy(newItems, a.items[:a.count])
	a.block.Free()
	a.block = newBlock
	a.items = newItems
}

// Get returns the element at i, or the error sentinel and false if i is
// out of range.
func (a *Array) Get(i int) (Value, bool) {
	if i < 0 || i >= a.count {
		return ErrorValue(), false
	}
	return a.items[i], true
}

// Set overwrites the element at i. Out-of-range indices are silently
// ignored.
func (a *Array) Set(i int, v Value) {
	if i < 0 || i >= a.count {
		return
	}
	a.items[i] = v
}

// Add appends v, growing the backing storage if needed.
func (a *Array) Add(v Value) {
	if a.count == len(a.items) {
		newCap := len(a.items) * 2
		if newCap == 0 {
			newCap = 4
		}
		a.growTo(newCap)
	}
	a.items[a.count] = v
	a.count++
}

// Insert inserts v at position i, shifting later elements right and
// growing the backing storage if needed. i must be in [0, count].
func (a *Array) Insert(i int, v Value) {
	if i < 0 || i > a.count {
		return
	}
	if a.count == len(a.items) {
		newCap := len(a.items) * 2
		if newCap == 0 {
			newCap = 4
		}
		a.growTo(newCap)
	}
	copy(a.items[i+1:a.count+1], a.items[i:a.count])
	a.items[i] = v
	a.count++
}

// Remove deletes and returns the element at i, shifting later elements
// left. Returns the error sentinel and false if i is out of range.
func (a *Array) Remove(i int) (Value, bool) {
	if i < 0 || i >= a.count {
		return ErrorValue(), false
	}
	v := a.items[i]
	copy(a.items[i:a.count-1], a.items[i+1:a.count])
	a.count--
	a.items[a.count] = Value{}
	return v, true
}

// ForEach iterates elements in order, stopping early if fn returns false.
func (a *Array) ForEach(fn func(i int, v Value) bool) {
	for i := 0; i < a.count; i++ {
		if !fn(i, a.items[i]) {
			return
		}
	}
}

// BuildInts creates an array populated with int values.
func BuildInts(p *pool.Pool, vals []int32) *Array {
	a := NewArray(p, len(vals))
	for _, v := range vals {
		a.Add(Int(v))
	}
	return a
}

// BuildFloats creates an array populated with real values.
func BuildFloats(p *pool.Pool, vals []float64) *Array {
	a := NewArray(p, len(vals))
	for _, v := range vals {
		a.Add(Real(v))
	}
	return a
}

// Destroy recursively frees owned element payloads, then releases the
// array's own storage.
func (a *Array) Destroy() {
	for i := 0; i < a.count; i++ {
		Free(a.items[i])
	}
	a.block.Free()
}

// WriteTo emits a as "[ v1 v2 ... ]" (an empty array as "[ ]").
func (a *Array) WriteTo(out *output.Stream) {
	out.PutString("[ ")
	for i := 0; i < a.count; i++ {
		a.items[i].WriteTo(out)
		out.PutByte(' ')
	}
	out.PutByte(']')
}
