package model

import (
	"bytes"
	"testing"

	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

func TestArrayAddAndGet(t *testing.T) {
	p := pool.New()
	a := NewArray(p, 2)
	a.Add(Int(1))
	a.Add(Int(2))
	a.Add(Int(3)) // forces a grow past the initial capacity of 2

	if a.Count() != 3 {
		t.Fatalf("Count() = %d", a.Count())
	}
	for i, want := range []int32{1, 2, 3} {
		v, ok := a.Get(i)
		if !ok {
			t.Fatalf("Get(%d) not ok", i)
		}
		if n, _ := v.AsInt(); n != want {
			t.Fatalf("Get(%d) = %d, want %d", i, n, want)
		}
	}
}

func TestArrayGetOutOfRange(t *testing.T) {
	p := pool.New()
	a := NewArray(p, 2)
	if _, ok := a.Get(0); ok {
		t.Fatal("Get on empty array should fail")
	}
	if v, ok := a.Get(-1); ok || !v.IsError() {
		t.Fatal("Get(-1) should return the error sentinel")
	}
}

func TestArraySetIgnoresOutOfRange(t *testing.T) {
	p := pool.New()
	a := NewArray(p, 2)
	a.Add(Int(1))
	a.Set(5, Int(99)) // ignored if i >= count
	if n := a.Count(); n != 1 {
		t.Fatalf("Set out of range should not affect Count, got %d", n)
	}
}

func TestArrayInsertAndRemove(t *testing.T) {
	p := pool.New()
	a := NewArray(p, 2)
	a.Add(Int(1))
	a.Add(Int(3))
	a.Insert(1, Int(2))

	got := make([]int32, a.Count())
	a.ForEach(func(i int, v Value) bool {
		got[i], _ = v.AsInt()
		return true
	})
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("after insert: %v", got)
	}

	removed, ok := a.Remove(1)
	if !ok {
		t.Fatal("Remove(1) should succeed")
	}
	if n, _ := removed.AsInt(); n != 2 {
		t.Fatalf("Remove(1) returned %v", removed)
	}
	if a.Count() != 2 {
		t.Fatalf("Count() after remove = %d", a.Count())
	}
}

func TestBuildIntsAndFloats(t *testing.T) {
	p := pool.New()
	ints := BuildInts(p, []int32{1, 2, 3})
	if ints.Count() != 3 {
		t.Fatalf("BuildInts count = %d", ints.Count())
	}
	floats := BuildFloats(p, []float64{1.5, 2.5})
	if floats.Count() != 2 {
		t.Fatalf("BuildFloats count = %d", floats.Count())
	}
}

func TestWriteEmptyAndPopulatedArray(t *testing.T) {
	p := pool.New()
	empty := NewArray(p, 2)
	if got := writeArray(empty); got != "[ ]" {
		t.Fatalf("empty array wrote %q", got)
	}

	a := BuildInts(p, []int32{1, 2, 3})
	if got := writeArray(a); got != "[ 1 2 3 ]" {
		t.Fatalf("populated array wrote %q", got)
	}
}

func writeArray(a *Array) string {
	var buf bytes.Buffer
	out := output.New(&buf)
	a.WriteTo(out)
	return buf.String()
}

func TestArrayDestroyFreesElementPayloads(t *testing.T) {
	p := pool.New()
	a := NewArray(p, 4)
	a.Add(StringValue(NewString(p, []byte("x"))))
	blocksBeforeDestroy := p.BlockCount()
	a.Destroy()
	if p.BlockCount() >= blocksBeforeDestroy {
		t.Fatal("Destroy should free the array's own block and its string payload")
	}
}
