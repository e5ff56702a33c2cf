package model

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

func writeValue(v Value) string {
	var buf bytes.Buffer
	out := output.New(&buf)
	v.WriteTo(out)
	return buf.String()
}

func TestWriteScalarValues(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Real(1.5), "1.5"},
	}
	for _, c := range cases {
		if got := writeValue(c.v); got != c.want {
			t.Errorf("WriteTo(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestWriteAtomValue(t *testing.T) {
	p := pool.New()
	table := NewAtomTable(p, 8)
	a := table.Intern("Catalog")
	v := AtomValue(table, a)
	if got := writeValue(v); got != "/Catalog" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteReferenceValue(t *testing.T) {
	p := pool.New()
	xref := NewXref(p)
	obj := xref.Register(Int(1))
	v := ReferenceValue(obj)
	if got := writeValue(v); got != "1 0 R" {
		t.Fatalf("got %q", got)
	}
}

func TestErrorValueWritesNull(t *testing.T) {
	if got := writeValue(ErrorValue()); got != "null" {
		t.Fatalf("got %q", got)
	}
}

func TestAsAccessorsRejectWrongKind(t *testing.T) {
	v := Int(3)
	if _, ok := v.AsDict(); ok {
		t.Fatal("AsDict should fail on an int value")
	}
	if _, ok := v.AsArray(); ok {
		t.Fatal("AsArray should fail on an int value")
	}
	if n, ok := v.AsInt(); !ok || n != 3 {
		t.Fatalf("AsInt = (%d, %v)", n, ok)
	}
}

func TestWriteStringValueDispatchesOnHexMode(t *testing.T) {
	p := pool.New()
	lit := StringValue(NewString(p, []byte("a(b")))
	if got := writeValue(lit); got != `(a\(b)` {
		t.Fatalf("literal-mode string = %q", got)
	}

	hex := StringValue(NewHexString(p, []byte{0xAB, 0xCD}))
	if got := writeValue(hex); got != "<ABCD>" {
		t.Fatalf("hex-mode string = %q", got)
	}
}

func TestFreeOwnedString(t *testing.T) {
	p := pool.New()
	s := NewString(p, []byte("hi"))
	blocksBefore := p.BlockCount()
	v := StringValue(s)
	Free(v)
	if p.BlockCount() != blocksBefore-1 {
		t.Fatalf("Free(string value) did not release its block")
	}
}
