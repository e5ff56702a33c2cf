package model

import (
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

// StreamProducer pushes a stream's body into sink, exactly once,
// synchronously, before returning. cookie is opaque, passed through
// unexamined from whoever registered the producer.
type StreamProducer func(sink *DataSink, cookie interface{}) error

// Dict is a hash map from Atom to Value plus the bookkeeping a PDF
// stream object needs on top: an is-stream flag and, when set, the
// producer/cookie pair invoked to emit the stream body on demand.
type Dict struct {
	table    *AtomTable
	entries  *HashMap
	isStream bool
	producer StreamProducer
	cookie   interface{}

	// lengthRef, when non-nil, is the forward-reference object resolved
	// to the exact emitted byte count right after this stream's body is
	// written (see SetLengthRef and Xref.WriteReferenceDeclaration).
	lengthRef *IndirectObj
}

// NewDict creates an empty, non-stream dict. table supplies key-name
// spellings for serialization.
func NewDict(p *pool.Pool, table *AtomTable, capacityHint int) *Dict {
	return &Dict{table: table, entries: NewHashMap(p, capacityHint)}
}

// MarkStream flips d into a stream dict with the given body producer
// and cookie, invoked once when the stream is written.
func (d *Dict) MarkStream(producer StreamProducer, cookie interface{}) {
	d.isStream = true
	d.producer = producer
	d.cookie = cookie
}

// IsStream reports whether d carries a stream body.
func (d *Dict) IsStream() bool { return d.isStream }

// SetLengthRef registers ref as the forward-reference object to resolve
// to the exact emitted byte count once d's stream body has been
// written. The dict itself should already carry a ReferenceValue(ref)
// under its /Length key, so the dict's own serialized text never needs
// to change after the fact — only the separately-written ref object's
// value does.
func (d *Dict) SetLengthRef(ref *IndirectObj) {
	d.lengthRef = ref
}

// Put inserts or overwrites the value at key. A key equal to Undefined
// is silently rejected.
func (d *Dict) Put(key Atom, val Value) { d.entries.Put(key, val) }

// Get returns the value at key and true, or the error sentinel and
// false if key is absent.
func (d *Dict) Get(key Atom) (Value, bool) { return d.entries.Get(key) }

// Has reports whether key is present.
func (d *Dict) Has(key Atom) bool { return d.entries.Has(key) }

// Count returns the number of keys stored.
func (d *Dict) Count() int { return d.entries.Count() }

// ForEach iterates (key, value) pairs in unspecified order, stopping
// early if fn returns false.
func (d *Dict) ForEach(fn func(key Atom, val Value) bool) { d.entries.ForEach(fn) }

// Destroy recursively frees owned values, then releases the dict's own
// storage.
func (d *Dict) Destroy() { d.entries.Destroy() }

// WriteTo emits d's dictionary portion only: "<< /Key value ... >>", or
// "<< >>" when empty. Use WriteStreamBody afterward for stream dicts to
// append the "stream ... endstream" body (the xref's reference
// declaration writer does this automatically).
func (d *Dict) WriteTo(out *output.Stream) {
	if d.entries.Count() == 0 {
		out.PutString("<< >>")
		return
	}
	out.PutString("<< ")
	d.entries.ForEach(func(key Atom, val Value) bool {
		out.PutByte('/')
		out.PutString(d.table.Name(key))
		out.PutByte(' ')
		val.WriteTo(out)
		out.PutByte(' ')
		return true
	})
	out.PutString(">>")
}

// WriteStreamBody writes "\r\nstream\r\n", invokes d's producer with a
// fresh datasink wrapping out, then writes "\r\nendstream\r\n". The
// datasink is freed exactly once regardless of producer outcome. Should
// only be called on a dict with IsStream() true; the xref's reference
// declaration writer enforces this.
func (d *Dict) WriteStreamBody(out *output.Stream) (int, error) {
	out.PutString("\r\nstream\r\n")
	sink := newDataSink(out)
	err := d.producer(sink, d.cookie)
	n := sink.Count()
	sink.Free()
	out.PutString("\r\nendstream\r\n")
	return n, err
}
