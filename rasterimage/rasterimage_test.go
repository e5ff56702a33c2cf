package rasterimage

import (
	"testing"

	"github.com/benoitkugler/pdfraster/model"
)

func TestNewXObjectShape(t *testing.T) {
	doc := model.NewDocument()
	src := NewCCITTSource(1600, 1100, -1, false, []byte{0x00, 0x01, 0x02})

	ref := NewXObject(doc, src, doc.Atoms.Std.DeviceRGB)
	d, ok := ref.Value().AsDict()
	if !ok {
		t.Fatal("NewXObject should register a dict value")
	}
	if !d.IsStream() {
		t.Fatal("an Image XObject must be a stream")
	}
	w, ok := d.Get(doc.Atoms.Intern("Width"))
	if !ok {
		t.Fatal("missing /Width")
	}
	if n, _ := w.AsInt(); n != 1600 {
		t.Fatalf("/Width = %d, want 1600", n)
	}
}

func TestDecodeParmsFields(t *testing.T) {
	src := NewCCITTSource(800, 600, -1, true, nil)
	parms := src.DecodeParms()
	if parms["Columns"] != 800 || parms["Rows"] != 600 || parms["K"] != -1 || parms["BlackIs1"] != 1 {
		t.Fatalf("unexpected decode parms: %+v", parms)
	}
}
