package model

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

func TestStringBytesRoundTrip(t *testing.T) {
	p := pool.New()
	s := NewString(p, []byte("hello"))
	if string(s.Bytes()) != "hello" {
		t.Fatalf("got %q", s.Bytes())
	}
	if s.Len() != 5 {
		t.Fatalf("Len() = %d", s.Len())
	}
}

func TestWriteLiteralEscaping(t *testing.T) {
	p := pool.New()
	s := NewString(p, []byte("a(b)c\\d\ne"))

	var buf bytes.Buffer
	out := output.New(&buf)
	s.WriteLiteral(out)

	want := `(a\(b\)c\\d\012e)`
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteHex(t *testing.T) {
	p := pool.New()
	s := NewString(p, []byte{0x00, 0xFF, 0x0A})

	var buf bytes.Buffer
	out := output.New(&buf)
	s.WriteHex(out)

	if got := buf.String(); got != "<00FF0A>" {
		t.Fatalf("got %q", got)
	}
}

func TestFreeReturnsBlock(t *testing.T) {
	p := pool.New()
	s := NewString(p, []byte("x"))
	before := p.BlockCount()
	s.Free()
	if p.BlockCount() != before-1 {
		t.Fatal("Free did not release the pool block")
	}
}
