// Package rasterimage adapts encoded raster pixel data into the Image
// XObject streams a page's content references via the "Do" operator. It
// is the one place outside the object-graph core that reaches for a
// pixel codec, and it does so through a narrow ImageSource interface so
// the rest of the module never imports an image package directly.
package rasterimage

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/ccitt"

	"github.com/benoitkugler/pdfraster/model"
)

// ImageSource describes one page-sized raster image ready to embed: its
// pixel grid dimensions, bit depth, PDF filter name, any decode
// parameters the filter needs, and the already-encoded bytes to embed
// verbatim as the XObject stream body.
type ImageSource interface {
	Width() int
	Height() int
	BitsPerComponent() int
	Filter() string
	DecodeParms() map[string]int
	EncodedBytes() []byte
}

// CCITTSource wraps a Group 3/4 fax-encoded scanline image. Validate
// checks that the encoded bytes are well-formed CCITT data for the
// declared dimensions before NewXObject embeds them; the PDF stream body
// itself stays in its original encoded form, since CCITTFaxDecode is a
// PDF-native filter and re-encoding would only waste cycles and risk
// losing fidelity.
type CCITTSource struct {
	width, height int
	blackIs1      bool
	k             int // < 0: Group 4, 0: Group 3 1-D, > 0: Group 3 2-D (k lines)
	encoded       []byte
}

// NewCCITTSource wraps pre-encoded CCITT data. k follows the PDF /K
// convention: negative for Group 4, zero for pure Group 3 1-D, positive
// for mixed Group 3 2-D.
func NewCCITTSource(width, height, k int, blackIs1 bool, encoded []byte) *CCITTSource {
	return &CCITTSource{width: width, height: height, k: k, blackIs1: blackIs1, encoded: encoded}
}

// Validate decodes the wrapped data through golang.org/x/image/ccitt and
// confirms it produces exactly Width()*Height() pixels, catching
// malformed or truncated scan data before it is embedded in a document.
func (c *CCITTSource) Validate() error {
	mode := ccitt.Group4
	switch {
	case c.k == 0:
		mode = ccitt.Group3
	case c.k > 0:
		mode = ccitt.Group3
	}

	opts := &ccitt.Options{
		Invert: c.blackIs1,
		Align:  false,
	}
	r := ccitt.NewReader(bytes.NewReader(c.encoded), ccitt.MSB, mode, c.width, c.height, opts)

	got, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("rasterimage: invalid CCITT data: %w", err)
	}
	wantRowBytes := (c.width + 7) / 8
	if len(got) != wantRowBytes*c.height {
		return fmt.Errorf("rasterimage: decoded %d bytes, want %d for %dx%d", len(got), wantRowBytes*c.height, c.width, c.height)
	}
	return nil
}

func (c *CCITTSource) Width() int            { return c.width }
func (c *CCITTSource) Height() int           { return c.height }
func (c *CCITTSource) BitsPerComponent() int { return 1 }
func (c *CCITTSource) Filter() string        { return "CCITTFaxDecode" }

func (c *CCITTSource) DecodeParms() map[string]int {
	blackIs1 := 0
	if c.blackIs1 {
		blackIs1 = 1
	}
	return map[string]int{
		"K":        c.k,
		"Columns":  c.width,
		"Rows":     c.height,
		"BlackIs1": blackIs1,
	}
}

func (c *CCITTSource) EncodedBytes() []byte { return c.encoded }

// NewXObject builds an Image XObject dict from src and registers it as
// an indirect object: /Type /XObject /Subtype /Image /Width /Height
// /BitsPerComponent, /ColorSpace set to the colorSpace atom as given,
// /Filter, /DecodeParms, /Length, with the encoded bytes as the stream
// body.
func NewXObject(doc *model.Document, src ImageSource, colorSpace model.Atom) *model.IndirectObj {
	std := doc.Atoms.Std

	decodeParms := NewDict(doc, src.DecodeParms())

	d := model.NewDict(doc.Pool, doc.Atoms, 8)
	d.Put(std.Type, model.AtomValue(doc.Atoms, std.XObject))
	d.Put(doc.Atoms.Intern("Subtype"), model.AtomValue(doc.Atoms, doc.Atoms.Intern("Image")))
	d.Put(doc.Atoms.Intern("Width"), model.Int(int32(src.Width())))
	d.Put(doc.Atoms.Intern("Height"), model.Int(int32(src.Height())))
	d.Put(doc.Atoms.Intern("BitsPerComponent"), model.Int(int32(src.BitsPerComponent())))
	d.Put(doc.Atoms.Intern("ColorSpace"), model.AtomValue(doc.Atoms, colorSpace))
	d.Put(doc.Atoms.Intern("Filter"), model.AtomValue(doc.Atoms, doc.Atoms.Intern(src.Filter())))
	d.Put(doc.Atoms.Intern("DecodeParms"), model.DictValue(decodeParms))

	lengthKey := std.Length
	d.Put(lengthKey, model.Int(int32(len(src.EncodedBytes()))))

	encoded := src.EncodedBytes()
	d.MarkStream(func(sink *model.DataSink, _ interface{}) error {
		sink.Put(encoded)
		return nil
	}, nil)

	return doc.Xref.Register(model.DictValue(d))
}

// NewDict builds a plain (non-stream) Dict of integer entries, used for
// the small /DecodeParms dictionary a filter attaches to its stream.
func NewDict(doc *model.Document, ints map[string]int) *model.Dict {
	d := model.NewDict(doc.Pool, doc.Atoms, len(ints))
	for k, v := range ints {
		d.Put(doc.Atoms.Intern(k), model.Int(int32(v)))
	}
	return d
}
