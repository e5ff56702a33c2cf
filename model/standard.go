package model

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/benoitkugler/pdfraster/platform"
	"github.com/benoitkugler/pdfraster/pool"
	"golang.org/x/text/encoding/unicode"
)

// Document bundles the pool, atom table, and xref a writer needs to
// build the standard object graph: a Catalog referencing a Pages tree,
// one or more Page objects, their Contents streams, and an Info dict.
// Clock supplies the timestamps Info.SetCreationDate/SetModDate record,
// so tests can substitute platform.FixedClock for reproducible output.
type Document struct {
	Pool  *pool.Pool
	Atoms *AtomTable
	Xref  *Xref
	Clock platform.Clock
}

// NewDocument wires a fresh pool, atom table, and xref together, backed
// by platform.SystemClock.
func NewDocument() *Document {
	return NewDocumentWithClock(platform.SystemClock{})
}

// NewDocumentWithClock is NewDocument with an injected time source, for
// deterministic tests and golden-file comparisons.
func NewDocumentWithClock(clock platform.Clock) *Document {
	p := pool.New()
	return &Document{
		Pool:  p,
		Atoms: NewAtomTable(p, 64),
		Xref:  NewXref(p),
		Clock: clock,
	}
}

// Catalog wraps the indirect Catalog object and the Pages dict nested
// under it, so AddPage can append Kids/increment Count without
// re-walking the graph.
type Catalog struct {
	Ref       *IndirectObj
	pagesDict *Dict
	pagesKids *Array
	doc       *Document
}

// CatalogNew creates { /Type /Catalog, /Pages -> ref({/Type /Pages,
// /Kids [], /Count 0}) } and registers it as an indirect object.
func CatalogNew(doc *Document) *Catalog {
	std := doc.Atoms.Std

	kids := NewArray(doc.Pool, 4)
	pages := NewDict(doc.Pool, doc.Atoms, 4)
	pages.Put(std.Type, AtomValue(doc.Atoms, std.Pages))
	pages.Put(std.Kids, ArrayValue(kids))
	pages.Put(std.Count, Int(0))
	pagesRef := doc.Xref.Register(DictValue(pages))

	cat := NewDict(doc.Pool, doc.Atoms, 4)
	cat.Put(std.Type, AtomValue(doc.Atoms, std.Catalog))
	cat.Put(std.Pages, ReferenceValue(pagesRef))
	catRef := doc.Xref.Register(DictValue(cat))

	return &Catalog{Ref: catRef, pagesDict: pages, pagesKids: kids, doc: doc}
}

// AddPage appends pageRef to the Pages tree's /Kids and increments
// /Count.
func (c *Catalog) AddPage(pageRef *IndirectObj) {
	c.pagesKids.Add(ReferenceValue(pageRef))
	count, _ := c.pagesDict.Get(c.doc.Atoms.Std.Count)
	n, _ := count.AsInt()
	c.pagesDict.Put(c.doc.Atoms.Std.Count, Int(n+1))
}

// PageNewSimple creates { /Type /Page, /Parent <pages-ref>,
// /MediaBox [0 0 w h], /Resources {/XObject {}} } and registers it.
func PageNewSimple(doc *Document, cat *Catalog, width, height float64) *IndirectObj {
	std := doc.Atoms.Std

	xobjects := NewDict(doc.Pool, doc.Atoms, 4)
	resources := NewDict(doc.Pool, doc.Atoms, 2)
	resources.Put(std.XObject, DictValue(xobjects))

	mediaBox := NewArray(doc.Pool, 4)
	mediaBox.Add(Int(0))
	mediaBox.Add(Int(0))
	mediaBox.Add(Real(width))
	mediaBox.Add(Real(height))

	page := NewDict(doc.Pool, doc.Atoms, 4)
	page.Put(std.Type, AtomValue(doc.Atoms, std.Page))
	page.Put(std.Parent, pagesReference(cat))
	page.Put(std.MediaBox, ArrayValue(mediaBox))
	page.Put(std.Resources, DictValue(resources))

	return doc.Xref.Register(DictValue(page))
}

// pagesReference rebuilds the reference value pointing at the Pages
// dict nested under cat, since Catalog keeps the dict handle rather than
// a second IndirectObj.
func pagesReference(cat *Catalog) Value {
	catDict, _ := cat.Ref.value.AsDict()
	pagesVal, _ := catDict.Get(cat.doc.Atoms.Std.Pages)
	return pagesVal
}

// ContentsNew creates a stream whose producer invokes gen, registering
// /Length as a forward reference resolved to the exact byte count after
// the body is produced. The stream's own object is registered before
// its /Length forward reference, so Xref.WriteAllPending (registration
// order) always resolves the length before that object is written.
func ContentsNew(doc *Document, producer StreamProducer, cookie interface{}) *IndirectObj {
	std := doc.Atoms.Std
	d := NewDict(doc.Pool, doc.Atoms, 2)
	contentsRef := doc.Xref.Register(DictValue(d))

	lengthRef := doc.Xref.CreateForwardReference()
	d.Put(std.Length, ReferenceValue(lengthRef))
	d.SetLengthRef(lengthRef)
	d.MarkStream(producer, cookie)

	return contentsRef
}

// MetadataNew creates { /Type /Metadata, /Subtype /XML, /Length
// <forward> } with producer emitting the XMP packet bytes.
func MetadataNew(doc *Document, producer StreamProducer, cookie interface{}) *IndirectObj {
	std := doc.Atoms.Std
	d := NewDict(doc.Pool, doc.Atoms, 3)
	d.Put(std.Type, AtomValue(doc.Atoms, std.Metadata))
	d.Put(std.Subtype, AtomValue(doc.Atoms, std.XML))
	metaRef := doc.Xref.Register(DictValue(d))

	lengthRef := doc.Xref.CreateForwardReference()
	d.Put(std.Length, ReferenceValue(lengthRef))
	d.SetLengthRef(lengthRef)
	d.MarkStream(producer, cookie)

	return metaRef
}

// Info wraps the Info dictionary's indirect object so callers can set
// the standard metadata fields through their proper encodings rather
// than poking the dict directly.
type Info struct {
	Ref  *IndirectObj
	dict *Dict
	doc  *Document
}

// InfoNew creates an empty Info dict, registered as an indirect object.
func InfoNew(doc *Document) *Info {
	d := NewDict(doc.Pool, doc.Atoms, 8)
	ref := doc.Xref.Register(DictValue(d))
	return &Info{Ref: ref, dict: d, doc: doc}
}

// Dict returns the underlying Info dictionary, for callers (such as
// GenerateFileID) that need to inspect it directly.
func (info *Info) Dict() *Dict { return info.dict }

// utf16BEWithBOM is the wide-character encoding PDF text strings use for
// values outside PDFDocEncoding: a leading byte-order mark followed by
// UTF-16BE code units.
var utf16BEWithBOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// infoTextString encodes s as a UTF-16BE (BOM-prefixed) PDF text string.
// String.WriteLiteral escapes the resulting bytes as any other binary
// payload, so no pre-escaping of '(', ')' or '\\' is needed here.
func infoTextString(p *pool.Pool, s string) (Value, error) {
	encoded, err := utf16BEWithBOM.NewEncoder().String(s)
	if err != nil {
		return Value{}, fmt.Errorf("model: invalid text string %q: %w", s, err)
	}
	return StringValue(NewString(p, []byte(encoded))), nil
}

func (info *Info) setText(key Atom, s string) error {
	v, err := infoTextString(info.doc.Pool, s)
	if err != nil {
		return err
	}
	info.dict.Put(key, v)
	return nil
}

// SetTitle sets /Title, UTF-16BE encoded.
func (info *Info) SetTitle(s string) error { return info.setText(info.doc.Atoms.Std.Title, s) }

// SetAuthor sets /Author, UTF-16BE encoded.
func (info *Info) SetAuthor(s string) error { return info.setText(info.doc.Atoms.Std.Author, s) }

// SetSubject sets /Subject, UTF-16BE encoded.
func (info *Info) SetSubject(s string) error { return info.setText(info.doc.Atoms.Std.Subject, s) }

// SetCreator sets /Creator, UTF-16BE encoded.
func (info *Info) SetCreator(s string) error { return info.setText(info.doc.Atoms.Std.Creator, s) }

// SetProducer sets /Producer, UTF-16BE encoded.
func (info *Info) SetProducer(s string) error { return info.setText(info.doc.Atoms.Std.Producer, s) }

// SetCreationDate stamps /CreationDate with the document's clock reading
// at call time, as a PDF date string.
func (info *Info) SetCreationDate() {
	t := info.doc.Clock.Now()
	info.dict.Put(info.doc.Atoms.Std.CreationDate, StringValue(NewString(info.doc.Pool, []byte(MakeTimeString(t)))))
}

// SetModDate stamps /ModDate with the document's clock reading at call
// time, as a PDF date string.
func (info *Info) SetModDate() {
	t := info.doc.Clock.Now()
	info.dict.Put(info.doc.Atoms.Std.ModDate, StringValue(NewString(info.doc.Pool, []byte(MakeTimeString(t)))))
}

// GenerateFileID computes the two FileID halves required by the
// trailer's /ID entry: the MD5 digest over every string-valued entry of
// info's dict, visited in iteration order, duplicated into both array
// slots.
func GenerateFileID(p *pool.Pool, info *Dict) *Array {
	h := md5.New()
	info.ForEach(func(_ Atom, v Value) bool {
		if s, ok := v.AsString(); ok {
			h.Write(s.Bytes())
		}
		return true
	})
	digest := h.Sum(nil)

	a := NewArray(p, 2)
	a.Add(StringValue(NewHexString(p, digest)))
	a.Add(StringValue(NewHexString(p, digest)))
	return a
}

// MakeTimeString renders t as a PDF date string: "D:YYYYMMDDhhmmss<±>HH'mm"
// (22 bytes, no trailing apostrophe). The sign is '+' when the zone
// offset is non-negative, '-' otherwise.
func MakeTimeString(t time.Time) string {
	_, offsetSeconds := t.Zone()
	sign := byte('+')
	off := offsetSeconds
	if off < 0 {
		sign = '-'
		off = -off
	}
	hours := off / 3600
	minutes := (off % 3600) / 60
	return fmt.Sprintf("D:%04d%02d%02d%02d%02d%02d%c%02d'%02d",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		sign, hours, minutes)
}

// MakeXMPDateString renders t in XMP form: "YYYY-MM-DDThh:mm:ss<±>HH:MM"
// (25 bytes).
func MakeXMPDateString(t time.Time) string {
	_, offsetSeconds := t.Zone()
	sign := byte('+')
	off := offsetSeconds
	if off < 0 {
		sign = '-'
		off = -off
	}
	hours := off / 3600
	minutes := (off % 3600) / 60
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%c%02d:%02d",
		t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		sign, hours, minutes)
}
