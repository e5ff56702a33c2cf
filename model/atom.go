package model

import "github.com/benoitkugler/pdfraster/pool"

// Atom is an immutable interned PDF name. Two atoms are equal iff their
// identifiers are equal. The zero value, Undefined, can never be stored as
// a dict key (see Dict.Put).
type Atom uint32

// Undefined is the reserved "no atom" identifier.
const Undefined Atom = 0

// StdAtoms holds the stable identifiers for the closed set of standard
// names every document needs. They are interned once, at table creation,
// so callers never pay a map lookup for well-known keys like /Type or
// /Pages.
type StdAtoms struct {
	Type, Catalog, Pages, Kids, Count, Page, Parent, MediaBox,
	Resources, XObject, Length, Size, Root, Info, Metadata, Subtype,
	XML, DeviceRGB, Producer, Title, Subject, Creator, Author, None,
	CreationDate, ModDate Atom
}

var standardNames = []string{
	"Type", "Catalog", "Pages", "Kids", "Count", "Page", "Parent", "MediaBox",
	"Resources", "XObject", "Length", "Size", "Root", "Info", "Metadata", "Subtype",
	"XML", "DeviceRGB", "Producer", "Title", "Subject", "Creator", "Author", "None",
	"CreationDate", "ModDate",
}

// AtomTable interns names to stable integer identifiers. It is owned by a
// pool: its backing storage is released when the pool is cleaned.
type AtomTable struct {
	block  *pool.Block
	byName map[string]Atom
	byID   []string // byID[0] is unused ("undefined")

	// Std holds the predefined identifiers for the closed set of
	// well-known names.
	Std StdAtoms
}

// NewAtomTable creates a table seeded with the standard names, growing
// from capacityHint (any positive value is accepted; non-positive falls
// back to a small default).
func NewAtomTable(p *pool.Pool, capacityHint int) *AtomTable {
	if capacityHint <= 0 {
		capacityHint = 16
	}
	t := &AtomTable{
		block:  p.Alloc(capacityHint * 8),
		byName: make(map[string]Atom, capacityHint),
		byID:   []string{""}, // index 0 reserved
	}
	ids := make([]Atom, len(standardNames))
	for i, name := range standardNames {
		ids[i] = t.Intern(name)
	}
	t.Std = StdAtoms{
		Type: ids[0], Catalog: ids[1], Pages: ids[2], Kids: ids[3], Count: ids[4],
		Page: ids[5], Parent: ids[6], MediaBox: ids[7], Resources: ids[8], XObject: ids[9],
		Length: ids[10], Size: ids[11], Root: ids[12], Info: ids[13], Metadata: ids[14],
		Subtype: ids[15], XML: ids[16], DeviceRGB: ids[17], Producer: ids[18], Title: ids[19],
		Subject: ids[20], Creator: ids[21], Author: ids[22], None: ids[23],
		CreationDate: ids[24], ModDate: ids[25],
	}
	return t
}

// Intern returns the atom for name, creating it on first use. Idempotent:
// repeated calls with the same name return the same atom.
func (t *AtomTable) Intern(name string) Atom {
	if a, ok := t.byName[name]; ok {
		return a
	}
	a := Atom(len(t.byID))
	t.byID = append(t.byID, name)
	t.byName[name] = a
	return a
}

// Name returns the textual spelling of a, or "" for Undefined or an atom
// foreign to this table.
func (t *AtomTable) Name(a Atom) string {
	if a == Undefined || int(a) >= len(t.byID) {
		return ""
	}
	return t.byID[a]
}

// Count returns the number of distinct interned atoms (excluding Undefined).
func (t *AtomTable) Count() int {
	return len(t.byID) - 1
}

// Destroy releases the table's pool-owned bookkeeping block.
func (t *AtomTable) Destroy() {
	t.block.Free()
}
