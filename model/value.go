// Package model implements the PDF object-graph: a tagged value union,
// the pool-owned payload types it refers to (strings, arrays, dicts,
// indirect objects), the atom table, and the standard PDF/raster objects
// built on top of them.
package model

import (
	"strconv"

	"github.com/benoitkugler/pdfraster/output"
)

// Kind discriminates the Value union.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindAtom
	KindString
	KindArray
	KindDict
	KindReference
	KindError
)

// Value is a tagged PDF value, passed by value. Heap variants (String,
// Array, Dict, IndirectObj) are held by owning or non-owning handle
// depending on the variant: String/Array/Dict payloads referenced from a
// Value are owned by whichever container put them there; a reference
// Value is a non-owning handle into an Xref: CreateForwardReference never
// deduplicates, not even for null.
type Value struct {
	kind Kind

	b    bool
	i    int32
	f    float64
	atom Atom
	// atomName caches the spelling so a Value can format itself without
	// needing the AtomTable that produced it back in hand.
	atomName string

	str  *String
	arr  *Array
	dict *Dict
	ref  *IndirectObj
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a 32-bit integer value.
func Int(i int32) Value { return Value{kind: KindInt, i: i} }

// Real returns a real (floating point) value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// AtomValue returns a name value for the atom a, resolving its spelling
// from table at construction time so later formatting does not need the
// table back in hand.
func AtomValue(table *AtomTable, a Atom) Value {
	return Value{kind: KindAtom, atom: a, atomName: table.Name(a)}
}

// StringValue wraps an owned String payload.
func StringValue(s *String) Value { return Value{kind: KindString, str: s} }

// ArrayValue wraps an owned Array payload.
func ArrayValue(a *Array) Value { return Value{kind: KindArray, arr: a} }

// DictValue wraps an owned Dict payload.
func DictValue(d *Dict) Value { return Value{kind: KindDict, dict: d} }

// ReferenceValue wraps a non-owning handle to an indirect object.
func ReferenceValue(r *IndirectObj) Value { return Value{kind: KindReference, ref: r} }

// ErrorValue is the sentinel returned by failed lookups: not-found,
// bad-argument.
func ErrorValue() Value { return Value{kind: KindError} }

// Kind reports the Value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsError reports whether v is the error sentinel.
func (v Value) IsError() bool { return v.kind == KindError }

// AsDict returns the wrapped dict and true if v holds one.
func (v Value) AsDict() (*Dict, bool) {
	if v.kind == KindDict {
		return v.dict, true
	}
	return nil, false
}

// AsArray returns the wrapped array and true if v holds one.
func (v Value) AsArray() (*Array, bool) {
	if v.kind == KindArray {
		return v.arr, true
	}
	return nil, false
}

// AsString returns the wrapped string and true if v holds one.
func (v Value) AsString() (*String, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return nil, false
}

// AsReference returns the wrapped indirect object and true if v holds one.
func (v Value) AsReference() (*IndirectObj, bool) {
	if v.kind == KindReference {
		return v.ref, true
	}
	return nil, false
}

// AsInt returns the wrapped integer and true if v holds one.
func (v Value) AsInt() (int32, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// Free releases v's owned payload, if it has one. Reference values are
// non-owning (the Xref keeps indirect objects, which hold no pool block
// of their own) and are left untouched.
func Free(v Value) {
	switch v.kind {
	case KindString:
		v.str.Free()
	case KindArray:
		v.arr.Destroy()
	case KindDict:
		v.dict.Destroy()
	}
}

// WriteTo serializes v in PDF syntax to out. Dict and Array values recurse
// through their own WriteTo; a stream Dict written this way emits only its
// dictionary portion (follow it with Dict.WriteStreamBody for the
// "stream ... endstream" body, as Xref.WriteReferenceDeclaration does when
// declaring an indirect stream object).
func (v Value) WriteTo(out *output.Stream) {
	switch v.kind {
	case KindNull:
		out.PutString("null")
	case KindBool:
		if v.b {
			out.PutString("true")
		} else {
			out.PutString("false")
		}
	case KindInt:
		out.PutInt(v.i)
	case KindReal:
		out.PutFloat(v.f)
	case KindAtom:
		out.PutByte('/')
		out.PutString(v.atomName)
	case KindString:
		v.str.WriteTo(out)
	case KindArray:
		v.arr.WriteTo(out)
	case KindDict:
		v.dict.WriteTo(out)
	case KindReference:
		out.PutString(strconv.FormatUint(uint64(v.ref.number), 10))
		out.PutString(" 0 R")
	case KindError:
		// An error sentinel should never reach serialization in correct
		// code; null is the least surprising fallback.
		out.PutString("null")
	}
}
