package reader

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/benoitkugler/pdfraster/model"
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/writer"
)

// readerAtBytes adapts a []byte to io.ReaderAt for the tests below.
type readerAtBytes []byte

func (b readerAtBytes) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func buildDocument(t *testing.T) []byte {
	t.Helper()
	doc := model.NewDocument()
	cat := model.CatalogNew(doc)
	page := model.PageNewSimple(doc, cat, 1600, 2200)
	cat.AddPage(page)
	info := model.InfoNew(doc)

	var buf bytes.Buffer
	out := output.New(&buf)
	writer.WritePDFHeader(out, "1.7")
	out.PutString("%PDF-raster_1.0\n")

	fileID := model.GenerateFileID(doc.Pool, info.Dict())
	if err := writer.WriteEndOfDocument(out, doc.Xref, cat.Ref, info.Ref, fileID); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRecognizeValidHeader(t *testing.T) {
	data := buildDocument(t)
	if !Recognize(readerAtBytes(data)) {
		t.Fatal("Recognize should accept a header with a PDF/raster marker")
	}
}

func TestRecognizeRejectsPlainPDF(t *testing.T) {
	data := []byte("%PDF-1.7\nsome content with no raster marker")
	if Recognize(readerAtBytes(data)) {
		t.Fatal("Recognize should reject a header without the raster marker")
	}
}

func TestOpenAndPageCount(t *testing.T) {
	data := buildDocument(t)
	r, err := Open(readerAtBytes(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	n, err := r.PageCount()
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("PageCount = %d, want 1", n)
	}
}

func TestHeaderVersion(t *testing.T) {
	data := buildDocument(t)
	v, err := HeaderVersion(readerAtBytes(data))
	if err != nil {
		t.Fatal(err)
	}
	if v != "1.7" {
		t.Fatalf("HeaderVersion = %q, want 1.7", v)
	}
}

func TestOpenRejectsUnrecognizedSource(t *testing.T) {
	data := []byte("%PDF-1.7\nno raster marker here")
	_, err := Open(readerAtBytes(data), int64(len(data)))
	if !errors.Is(err, ErrNotRecognized) {
		t.Fatalf("Open on an unrecognized source should wrap ErrNotRecognized, got %v", err)
	}
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	data := buildDocument(t)
	truncated := data[:len(data)-40]
	if _, err := Open(readerAtBytes(truncated), int64(len(truncated))); err == nil {
		t.Fatal("Open should fail on a truncated file")
	}
}

func TestStrippedHelperDoesNotPanic(t *testing.T) {
	// guards against regressions in the byte-window arithmetic for very
	// small inputs, a case a 1024-byte lookback window must still handle.
	tiny := []byte("%PDF-1.7\n%PDF-raster_1.0\nxref\n0 1\n0000000000 65535 f\r\ntrailer\n<< /Size 1 >>\nstartxref\n0\n%%EOF")
	_ = Recognize(readerAtBytes(tiny))
	_, _ = Open(readerAtBytes(tiny), int64(len(tiny)))
	if !strings.Contains(string(tiny), "trailer") {
		t.Fatal("sanity check on fixture")
	}
}
