package model

import (
	"strconv"

	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

// IndirectObj is a forward-declarable handle into an Xref: a stable
// object number plus the Value it ultimately resolves to, filled in at
// registration time. Serializing a reference to it (ReferenceValue)
// never waits for the declaration to be written first — the xref table
// resolves the byte offset once the object is actually emitted.
type IndirectObj struct {
	number       uint32
	value        Value
	dict         *Dict // non-nil when value is a dict/stream, for WriteStreamBody access
	written      bool
	filePosition int64
}

// Number returns the stable object number assigned at registration.
func (o *IndirectObj) Number() uint32 { return o.number }

// Xref is the indirect-object table: it assigns object numbers in
// registration order and remembers each object's file position once
// written, for the cross-reference table the file envelope emits at the
// end of the document. Registering never deduplicates — registering the
// same Value twice (even null) yields two distinct objects with two
// distinct numbers.
type Xref struct {
	p       *pool.Pool
	block   *pool.Block
	objects []*IndirectObj
}

// NewXref creates an empty table.
func NewXref(p *pool.Pool) *Xref {
	return &Xref{p: p, block: p.Alloc(0)}
}

// Register creates a new indirect object wrapping val and appends it at
// the next object number (objects are numbered 1, 2, 3, ... in
// registration order; 0 is reserved the way classic PDF reserves object
// 0 for the free-list head).
func (x *Xref) Register(val Value) *IndirectObj {
	o := &IndirectObj{number: uint32(len(x.objects) + 1), value: val}
	if d, ok := val.AsDict(); ok {
		o.dict = d
	}
	x.objects = append(x.objects, o)
	return o
}

// Count returns the number of registered objects.
func (x *Xref) Count() int { return len(x.objects) }

// ForEach iterates registered objects in registration order.
func (x *Xref) ForEach(fn func(o *IndirectObj)) {
	for _, o := range x.objects {
		fn(o)
	}
}

// WriteAllPending emits declarations for every registered object not yet
// written, in registration order.
func (x *Xref) WriteAllPending(out *output.Stream) error {
	for _, o := range x.objects {
		if o.written {
			continue
		}
		if err := x.WriteReferenceDeclaration(out, o); err != nil {
			return err
		}
	}
	return nil
}

// CreateForwardReference registers an object with value null, returning
// a handle whose value Resolve can fill in once known.
func (x *Xref) CreateForwardReference() *IndirectObj {
	return x.Register(Null())
}

// Resolve sets o's value after the fact, for objects registered via
// CreateForwardReference. Has no effect once o has been written.
func (o *IndirectObj) Resolve(val Value) {
	if o.written {
		return
	}
	o.value = val
	if d, ok := val.AsDict(); ok {
		o.dict = d
	}
}

// IsWritten reports whether o's declaration has been emitted.
func (o *IndirectObj) IsWritten() bool { return o.written }

// FilePosition returns the byte offset at which o's declaration begins,
// valid only after IsWritten is true.
func (o *IndirectObj) FilePosition() int64 { return o.filePosition }

// Value returns o's current value.
func (o *IndirectObj) Value() Value { return o.value }

// WriteReferenceDeclaration emits "<n> 0 obj\n<value>\nendobj\n" at the
// stream's current position, recording that position as o's file offset
// for the cross-reference table. A stream dict additionally gets its
// "stream ... endstream" body appended between the dictionary and
// "endobj". Subsequent calls for an already-written object are no-ops.
func (x *Xref) WriteReferenceDeclaration(out *output.Stream, o *IndirectObj) error {
	if o.written {
		return nil
	}
	o.filePosition = out.Position()
	out.PutString(strconv.FormatUint(uint64(o.number), 10))
	out.PutString(" 0 obj\n")
	o.value.WriteTo(out)

	if o.dict != nil && o.dict.IsStream() {
		n, err := o.dict.WriteStreamBody(out)
		if err != nil {
			return err
		}
		if lenRef := o.dict.lengthRef; lenRef != nil {
			lenRef.Resolve(Int(int32(n)))
		}
	}

	out.PutString("\nendobj\n")
	o.written = true
	return out.Err()
}

// WriteXrefTable emits a classic cross-reference table: "xref\n",
// "0 <count+1>\n", the free-list head "0000000000 65535 f\r\n", then one
// 20-byte "<10-digit offset> 00000 n\r\n" entry per registered object in
// registration order. Returns the byte position at which the table
// itself began (the value to record as startxref).
func (x *Xref) WriteXrefTable(out *output.Stream) int64 {
	pos := out.Position()
	out.PutString("xref\n")
	out.PutString("0 " + strconv.Itoa(len(x.objects)+1) + "\n")
	out.PutString("0000000000 65535 f\r\n")
	for _, o := range x.objects {
		out.PutString(pad10(o.filePosition))
		out.PutString(" 00000 n\r\n")
	}
	return pos
}

func pad10(n int64) string {
	s := strconv.FormatInt(n, 10)
	for len(s) < 10 {
		s = "0" + s
	}
	return s
}
