// Package output implements the position-tracked, byte-exact formatting
// layer every PDF structure is serialized through: integers, fixed
// precision reals, NUL-terminated strings, hex pairs, and raw byte runs, all
// recorded against a running byte offset so callers (the xref table, the
// file-envelope writer) can record exact file positions.
package output

import (
	"math"
	"strconv"

	"github.com/benoitkugler/pdfraster/platform"
)

// Stream wraps a platform.Sink and tracks the number of bytes written
// since creation, so callers can record exact file positions as they go.
type Stream struct {
	sink     platform.Sink
	written  int64
	shortErr error // records the first short/failed write; never raised
}

// New wraps dst for position-tracked, formatted output.
func New(dst platform.Sink) *Stream {
	return &Stream{sink: dst}
}

// Position returns the total number of bytes emitted since creation.
func (s *Stream) Position() int64 {
	return s.written
}

// Err returns the first write-fail encountered, if any. The stream keeps
// accepting calls after a failure — the failure is recorded, not raised —
// so Err exists purely for callers that want to check once at the end.
func (s *Stream) Err() error {
	return s.shortErr
}

func (s *Stream) raw(p []byte) {
	n, err := s.sink.Write(p)
	s.written += int64(n)
	if err != nil && s.shortErr == nil {
		s.shortErr = err
	} else if n < len(p) && s.shortErr == nil {
		s.shortErr = errShortWrite
	}
}

// PutByte emits a single octet, NUL included.
func (s *Stream) PutByte(b byte) {
	s.raw([]byte{b})
}

// PutCString emits the bytes of buf up to (not including) the first NUL
// byte, or all of buf if it contains none. A nil buf is a no-op.
func (s *Stream) PutCString(buf []byte) {
	if buf == nil {
		return
	}
	for i, b := range buf {
		if b == 0 {
			s.raw(buf[:i])
			return
		}
	}
	s.raw(buf)
}

// PutN emits exactly length bytes from buf starting at offset.
func (s *Stream) PutN(buf []byte, offset, length int) {
	s.raw(buf[offset : offset+length])
}

// PutBytes emits p verbatim.
func (s *Stream) PutBytes(p []byte) {
	s.raw(p)
}

// PutString emits s verbatim (a convenience over PutBytes).
func (s *Stream) PutString(str string) {
	s.raw([]byte(str))
}

// PutInt emits v as a signed decimal with a leading '-' only when
// negative. strconv.FormatInt operates on int64 so INT32_MIN round-trips
// without overflow.
func (s *Stream) PutInt(v int32) {
	s.raw([]byte(strconv.FormatInt(int64(v), 10)))
}

// PutHex emits b as two uppercase hex digits.
func (s *Stream) PutHex(b byte) {
	const digits = "0123456789ABCDEF"
	s.raw([]byte{digits[b>>4], digits[b&0x0f]})
}

var errShortWrite = shortWriteError{}

type shortWriteError struct{}

func (shortWriteError) Error() string { return "output: short write" }

// FormatFloat renders f as a normalized PDF real: no scientific notation,
// at most 10 fractional digits, round-half-away-from-zero at the 10th
// fractional digit, trailing fractional zeros stripped but at least one
// digit kept after '.' for values whose original (unrounded) form was not
// itself an integer, and pure-integer output (e.g. "0", "-1") for values
// that already are. Non-finite values print as "inf", "-inf", "nan".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return "0"
	}

	sign := ""
	af := f
	if f < 0 {
		sign = "-"
		af = -f
	}

	intPart, fracPart := splitDecimal(af)
	if fracPart == "" {
		// The shortest round-trip decimal has no fractional part: af is
		// already an integer.
		return sign + intPart
	}

	intPart, frac10 := roundFraction(intPart, fracPart, 10)
	frac10 = trimTrailingZeros(frac10)
	if frac10 == "" {
		frac10 = "0"
	}
	return sign + intPart + "." + frac10
}

// PutFloat emits FormatFloat(f).
func (s *Stream) PutFloat(f float64) {
	s.raw([]byte(FormatFloat(f)))
}

// splitDecimal returns the shortest round-trip decimal representation of the
// non-negative af, split at the decimal point. fracPart is "" when af is
// an integer.
func splitDecimal(af float64) (intPart, fracPart string) {
	str := strconv.FormatFloat(af, 'f', -1, 64)
	for i := 0; i < len(str); i++ {
		if str[i] == '.' {
			return str[:i], str[i+1:]
		}
	}
	return str, ""
}

// roundFraction rounds frac to at most n digits, half-away-from-zero,
// propagating any carry into intPart. If frac has n digits or fewer it is
// returned unchanged (zero-padding is never added).
func roundFraction(intPart, frac string, n int) (string, string) {
	if len(frac) <= n {
		return intPart, frac
	}
	kept := []byte(frac[:n])
	roundUp := frac[n] >= '5'
	if roundUp {
		i := len(kept) - 1
		for i >= 0 {
			if kept[i] == '9' {
				kept[i] = '0'
				i--
				continue
			}
			kept[i]++
			roundUp = false
			break
		}
		if roundUp {
			// carried out of the fractional part entirely
			intPart = incrementDecimalString(intPart)
		}
	}
	return intPart, string(kept)
}

// incrementDecimalString adds 1 to the non-negative decimal string s.
func incrementDecimalString(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '9' {
			b[i] = '0'
			continue
		}
		b[i]++
		return string(b)
	}
	return "1" + string(b)
}

func trimTrailingZeros(frac string) string {
	i := len(frac)
	for i > 0 && frac[i-1] == '0' {
		i--
	}
	return frac[:i]
}
