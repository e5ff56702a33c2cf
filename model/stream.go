package model

import "github.com/benoitkugler/pdfraster/output"

// DataSink is a push-mode byte consumer handed to a stream's producer
// callback. Put forwards bytes to the underlying output stream and
// tallies how many were pushed; Free must be invoked exactly once when
// the sink is retired.
type DataSink struct {
	out   *output.Stream
	count int
	freed bool
}

func newDataSink(out *output.Stream) *DataSink {
	return &DataSink{out: out}
}

// Put pushes buf's bytes through to the output stream, returning true on
// success. After Free, Put is a no-op returning false.
func (s *DataSink) Put(buf []byte) bool {
	if s.freed {
		return false
	}
	s.out.PutBytes(buf)
	s.count += len(buf)
	return true
}

// Count reports the number of bytes pushed through Put so far.
func (s *DataSink) Count() int { return s.count }

// Free retires the sink. Subsequent Put calls are no-ops. Calling Free
// more than once is harmless.
func (s *DataSink) Free() {
	s.freed = true
}
