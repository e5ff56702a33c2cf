package model

import "github.com/benoitkugler/pdfraster/pool"

// hashEntry is one slot in a HashMap's open-addressed table.
type hashEntry struct {
	used bool
	key  Atom
	val  Value
}

// loadFactorLimit is the fraction of filled slots past which a HashMap
// grows its table.
const loadFactorLimit = 0.7

// HashMap is an atom-keyed map with open addressing and linear probing,
// backed by a single pool-owned block of slots. It underlies Dict: a dict
// is a HashMap plus the stream bookkeeping layered on top (is-stream flag,
// producer/cookie).
type HashMap struct {
	p       *pool.Pool
	block   *pool.Block
	entries []hashEntry
	count   int
}

// NewHashMap creates a map whose table has nextPowerOfTwo(capacityHint)
// slots, at least 8. The table grows when an insert would fill more than
// loadFactorLimit of its slots, so an 8-slot table holds 5 entries before
// its first resize.
func NewHashMap(p *pool.Pool, capacityHint int) *HashMap {
	cap := nextPowerOfTwo(capacityHint)
	if cap < 8 {
		cap = 8
	}
	return &HashMap{
		p:       p,
		block:   p.Alloc(cap * 24),
		entries: make([]hashEntry, cap),
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func atomHash(a Atom) uint32 {
	h := uint32(a)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func (m *HashMap) slotFor(entries []hashEntry, key Atom) int {
	mask := uint32(len(entries) - 1)
	i := atomHash(key) & mask
	for entries[i].used && entries[i].key != key {
		i = (i + 1) & mask
	}
	return int(i)
}

func (m *HashMap) growIfNeeded() {
	if float64(m.count+1) <= loadFactorLimit*float64(len(m.entries)) {
		return
	}
	newCap := len(m.entries) * 2
	newBlock := m.p.Alloc(newCap * 24)
	newEntries := make([]hashEntry, newCap)
	for _, e := range m.entries {
		if !e.used {
			continue
		}
		i := m.slotFor(newEntries, e.key)
		newEntries[i] = e
	}
	m.block.Free()
	m.block = newBlock
	m.entries = newEntries
}

// Count reports the number of keys currently stored.
func (m *HashMap) Count() int { return m.count }

// Get returns the value for key and true, or the error sentinel and
// false if key is absent.
func (m *HashMap) Get(key Atom) (Value, bool) {
	i := m.slotFor(m.entries, key)
	if !m.entries[i].used {
		return ErrorValue(), false
	}
	return m.entries[i].val, true
}

// Has reports whether key is present.
func (m *HashMap) Has(key Atom) bool {
	i := m.slotFor(m.entries, key)
	return m.entries[i].used
}

// Put inserts or overwrites the value for key. Inserting with
// key == Undefined is a no-op: Undefined is never a valid dict key.
func (m *HashMap) Put(key Atom, val Value) {
	if key == Undefined {
		return
	}
	m.growIfNeeded()
	i := m.slotFor(m.entries, key)
	if !m.entries[i].used {
		m.count++
	}
	m.entries[i] = hashEntry{used: true, key: key, val: val}
}

// Delete removes key if present, closing the probe chain behind it so
// later lookups for displaced keys still succeed.
func (m *HashMap) Delete(key Atom) {
	i := m.slotFor(m.entries, key)
	if !m.entries[i].used {
		return
	}
	mask := uint32(len(m.entries) - 1)
	m.entries[i] = hashEntry{}
	m.count--
	j := (uint32(i) + 1) & mask
	for m.entries[j].used {
		e := m.entries[j]
		m.entries[j] = hashEntry{}
		m.count--
		reinsertAt := m.slotFor(m.entries, e.key)
		m.entries[reinsertAt] = e
		m.count++
		j = (j + 1) & mask
	}
}

// ForEach iterates over all (key, value) pairs in unspecified order,
// stopping early if fn returns false.
func (m *HashMap) ForEach(fn func(key Atom, val Value) bool) {
	for _, e := range m.entries {
		if e.used && !fn(e.key, e.val) {
			return
		}
	}
}

// Destroy recursively frees owned values, then releases the map's own
// storage.
func (m *HashMap) Destroy() {
	for _, e := range m.entries {
		if e.used {
			Free(e.val)
		}
	}
	m.block.Free()
}
