// Package writer implements the file-envelope writer: the byte-exact
// header, the orchestration of pending indirect-object declarations, the
// classic cross-reference table, and the trailer, tying together
// output.Stream and model.Xref the way a document writer assembles a
// finished PDF from an object graph.
package writer

import (
	"strconv"

	"github.com/benoitkugler/pdfraster/model"
	"github.com/benoitkugler/pdfraster/output"
	"github.com/benoitkugler/pdfraster/pool"
)

// emptyMD5Digest is the MD5 digest of the empty byte string, used for
// both FileID halves in test mode (xref == nil, fileID == nil).
var emptyMD5Digest = []byte{
	0xd4, 0x1d, 0x8c, 0xd9, 0x8f, 0x00, 0xb2, 0x04,
	0xe9, 0x80, 0x09, 0x98, 0xec, 0xf8, 0x42, 0x7e,
}

// defaultFileID builds the two-element hex-string array used when a
// caller has no real FileID to supply. It gets its own throwaway pool,
// since the value only needs to live for the one WriteTo call below.
func defaultFileID() *model.Array {
	p := pool.New()
	a := model.NewArray(p, 2)
	a.Add(model.StringValue(model.NewHexString(p, emptyMD5Digest)))
	a.Add(model.StringValue(model.NewHexString(p, emptyMD5Digest)))
	return a
}

// WritePDFHeader emits "%PDF-<version>\n%\xE2\xE3\xCF\xD3\n", where
// version is a string like "1.7".
func WritePDFHeader(out *output.Stream, version string) {
	out.PutString("%PDF-")
	out.PutString(version)
	out.PutByte('\n')
	out.PutByte('%')
	out.PutBytes([]byte{0xE2, 0xE3, 0xCF, 0xD3})
	out.PutByte('\n')
}

// WriteEndOfDocument performs the five-step close sequence: flush every
// pending indirect object, record the xref table's own position, emit the
// table, emit the trailer dict, then emit startxref/%%EOF. fileID supplies
// the /ID array and writes itself in whatever mode its strings were built
// with (see model.GenerateFileID); pass nil to fall back to md5(""). Pass
// a nil xref for test mode, which emits /Size 0 and no Root/Info.
func WriteEndOfDocument(out *output.Stream, xref *model.Xref, catalog, info *model.IndirectObj, fileID *model.Array) error {
	if xref == nil {
		return writeEmptyDocumentTrailer(out, fileID)
	}
	if fileID == nil {
		fileID = defaultFileID()
	}

	if err := xref.WriteAllPending(out); err != nil {
		return err
	}

	startxref := xref.WriteXrefTable(out)

	out.PutString("trailer\n")
	out.PutString("<< /Size ")
	out.PutString(strconv.Itoa(xref.Count() + 1))
	out.PutString(" /Root ")
	out.PutString(strconv.FormatUint(uint64(catalog.Number()), 10))
	out.PutString(" 0 R /Info ")
	out.PutString(strconv.FormatUint(uint64(info.Number()), 10))
	out.PutString(" 0 R /ID ")
	fileID.WriteTo(out)
	out.PutString(" >>\n")

	out.PutString("startxref\n")
	out.PutString(strconv.FormatInt(startxref, 10))
	out.PutString("\n%%EOF\n")

	return out.Err()
}

// writeEmptyDocumentTrailer handles the null-xref test-mode trailer:
// /Size 0, no Root/Info, FileID defaulting to md5("").
func writeEmptyDocumentTrailer(out *output.Stream, fileID *model.Array) error {
	if fileID == nil {
		fileID = defaultFileID()
	}

	out.PutString("xref\n0 1\n0000000000 65535 f\r\n")
	out.PutString("trailer\n")
	out.PutString("<< /Size 0 /ID ")
	fileID.WriteTo(out)
	out.PutString(" >>\n")
	out.PutString("startxref\n0\n%%EOF\n")
	return out.Err()
}
