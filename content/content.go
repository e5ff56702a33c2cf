// Package content implements the content-stream generator: a small set
// of PDF content-stream operators, each writing itself through the same
// byte-exact output stream the rest of the writer uses, plus the
// pull-based Generator hook a stream's producer invokes to fill a page's
// content body on demand.
package content

import (
	"github.com/benoitkugler/pdfraster/model"
	"github.com/benoitkugler/pdfraster/output"
)

// Writer accumulates content-stream operators into a byte buffer through
// an output.Stream, so operator emitters can reuse the same numeric
// formatting (FormatFloat) the rest of the document uses.
type Writer struct {
	out *output.Stream
}

// NewWriter wraps dst for operator emission.
func NewWriter(dst *output.Stream) *Writer {
	return &Writer{out: dst}
}

// GSave emits " q" (push the graphics state).
func (w *Writer) GSave() {
	w.out.PutString(" q")
}

// GRestore emits " Q" (pop the graphics state).
func (w *Writer) GRestore() {
	w.out.PutString(" Q")
}

// ConcatMatrix emits " a b c d e f cm" (prepend a matrix to the CTM).
func (w *Writer) ConcatMatrix(a, b, c, d, e, f float64) {
	w.out.PutByte(' ')
	w.out.PutFloat(a)
	w.out.PutByte(' ')
	w.out.PutFloat(b)
	w.out.PutByte(' ')
	w.out.PutFloat(c)
	w.out.PutByte(' ')
	w.out.PutFloat(d)
	w.out.PutByte(' ')
	w.out.PutFloat(e)
	w.out.PutByte(' ')
	w.out.PutFloat(f)
	w.out.PutString(" cm")
}

// XObject emits " /Name Do" (paint the named XObject from the page's
// resource dictionary).
func (w *Writer) XObject(name string) {
	w.out.PutString(" /")
	w.out.PutString(name)
	w.out.PutString(" Do")
}

// Generator produces a page's content-stream body by driving a Writer
// wrapped around the datasink a stream's producer is handed. cookie is
// opaque, passed through unexamined.
type Generator func(w *Writer, cookie interface{}) error

// Produce adapts a Generator into a model.StreamProducer: it wraps sink
// in an output.Stream backed directly by the datasink, runs gen, and
// propagates any error.
func Produce(gen Generator, cookie interface{}) model.StreamProducer {
	return func(sink *model.DataSink, c interface{}) error {
		out := output.New(sinkAdapter{sink})
		w := NewWriter(out)
		return gen(w, c)
	}
}

// sinkAdapter lets a model.DataSink satisfy platform.Sink, so content
// operators can be written through the normal output.Stream formatting
// path straight into a stream body.
type sinkAdapter struct {
	sink *model.DataSink
}

func (a sinkAdapter) Write(p []byte) (int, error) {
	if !a.sink.Put(p) {
		return 0, errSinkClosed
	}
	return len(p), nil
}

var errSinkClosed = sinkClosedError{}

type sinkClosedError struct{}

func (sinkClosedError) Error() string { return "content: datasink already freed" }

// ImagePlacement draws one XObject image filling a unit square that is
// itself scaled/positioned by matrix: the common case of gsave, cm, Do,
// grestore in sequence.
func ImagePlacement(w *Writer, xobjectName string, a, b, c, d, e, f float64) {
	w.GSave()
	w.ConcatMatrix(a, b, c, d, e, f)
	w.XObject(xobjectName)
	w.GRestore()
}
