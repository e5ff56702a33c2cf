package model

import (
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

// String is a length-counted, binary-safe byte string. It owns its bytes
// through a pool block, so it may contain NUL.
type String struct {
	block *pool.Block
	hex   bool
}

// NewString copies data into a pool-owned byte string that serializes
// itself in literal "(...)" form.
func NewString(p *pool.Pool, data []byte) *String {
	b := p.Alloc(len(data))
	copy(b.Bytes(), data)
	return &String{block: b}
}

// NewHexString copies data into a pool-owned byte string that serializes
// itself in hex "<HH...HH>" form, for binary payloads like the FileID
// halves that have no sensible literal-string escaping.
func NewHexString(p *pool.Pool, data []byte) *String {
	b := p.Alloc(len(data))
	copy(b.Bytes(), data)
	return &String{block: b, hex: true}
}

// Bytes returns the string's owned bytes.
func (s *String) Bytes() []byte { return s.block.Bytes() }

// Len returns the string's length in bytes.
func (s *String) Len() int { return s.block.Size() }

// Free returns the string's storage to its pool.
func (s *String) Free() { s.block.Free() }

// WriteLiteral emits s as a PDF literal string: "(...)" with "\(", "\)",
// "\\" escaped, and any byte below 0x20 written as a three-digit octal
// escape (e.g. newline as "\012").
func (s *String) WriteLiteral(out *output.Stream) {
	out.PutByte('(')
	for _, b := range s.Bytes() {
		switch {
		case b == '(' || b == ')' || b == '\\':
			out.PutByte('\\')
			out.PutByte(b)
		case b < 0x20:
			out.PutByte('\\')
			out.PutByte('0' + (b>>6)&0x7)
			out.PutByte('0' + (b>>3)&0x7)
			out.PutByte('0' + b&0x7)
		default:
			out.PutByte(b)
		}
	}
	out.PutByte(')')
}

// WriteHex emits s as a PDF hex string: "<HH...HH>". Used for binary
// strings such as the FileID halves.
func (s *String) WriteHex(out *output.Stream) {
	out.PutByte('<')
	for _, b := range s.Bytes() {
		out.PutHex(b)
	}
	out.PutByte('>')
}

// IsHex reports whether s was built with NewHexString, and therefore
// serializes itself in hex rather than escaped-literal form.
func (s *String) IsHex() bool { return s.hex }

// WriteTo emits s in whichever form it was constructed with: WriteHex for
// a NewHexString payload, WriteLiteral otherwise. Value.WriteTo calls
// this so a string embedded in an Array or Dict renders itself the same
// way regardless of where it is serialized from.
func (s *String) WriteTo(out *output.Stream) {
	if s.hex {
		s.WriteHex(out)
		return
	}
	s.WriteLiteral(out)
}
