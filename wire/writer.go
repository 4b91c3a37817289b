/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package wire

import (
	"bufio"
	"io"
	"strconv"

	libenc "github.com/nabbar/cuti/encoding"
	enchex "github.com/nabbar/cuti/encoding/hexa"
)

// bytesPerChunk bounds how many source bytes back a single hex chunk in a
// byte vector's compact form, so a large blob streams out as several
// chunks instead of one unbounded token.
const bytesPerChunk = 4096

// Writer encodes values in the wire format onto an underlying io.Writer.
type Writer struct {
	w   *bufio.Writer
	hex libenc.Coder
}

// NewWriter wraps w for wire-format encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), hex: enchex.New()}
}

func (w *Writer) space() error {
	return w.w.WriteByte(' ')
}

// Bool writes a boolean/flag primitive.
func (w *Writer) Bool(b bool) error {
	if err := w.space(); err != nil {
		return err
	}
	if b {
		return w.w.WriteByte('*')
	}
	return w.w.WriteByte('!')
}

// Uint writes an unsigned integer primitive.
func (w *Writer) Uint(v uint64) error {
	if err := w.space(); err != nil {
		return err
	}
	_, err := w.w.WriteString(strconv.FormatUint(v, 10))
	return err
}

// Int writes a signed integer primitive. The most-negative value of the
// target width is written as its two's-complement magnitude so the reader
// can recover it without overflowing a signed accumulator.
func (w *Writer) Int(v int64) error {
	if err := w.space(); err != nil {
		return err
	}
	if v < 0 {
		if err := w.w.WriteByte('-'); err != nil {
			return err
		}
		mag := uint64(-(v + 1)) + 1
		_, err := w.w.WriteString(strconv.FormatUint(mag, 10))
		return err
	}
	_, err := w.w.WriteString(strconv.FormatUint(uint64(v), 10))
	return err
}

// String writes a string primitive, escaping control and non-printable
// bytes, `"` and `\` per the wire grammar.
func (w *Writer) String(s string) error {
	if err := w.space(); err != nil {
		return err
	}
	if err := w.w.WriteByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\t':
			_, _ = w.w.WriteString(`\t`)
		case c == '\n':
			_, _ = w.w.WriteString(`\n`)
		case c == '\r':
			_, _ = w.w.WriteString(`\r`)
		case c == '\\':
			_, _ = w.w.WriteString(`\\`)
		case c == '"':
			_, _ = w.w.WriteString(`\"`)
		case c < 0x20 || c >= 0x7f:
			_, _ = w.w.WriteString(`\x`)
			_, _ = w.w.WriteString(hexByte(c))
		default:
			if err := w.w.WriteByte(c); err != nil {
				return err
			}
		}
	}
	return w.w.WriteByte('"')
}

// Ident writes a bare identifier primitive; callers are responsible for
// passing a value that already matches [A-Za-z_][A-Za-z0-9_]*.
func (w *Writer) Ident(s string) error {
	if err := w.space(); err != nil {
		return err
	}
	_, err := w.w.WriteString(s)
	return err
}

// OptionalNone writes an empty optional: `[` then `]` with no contained
// value.
func (w *Writer) OptionalNone() error {
	if err := w.space(); err != nil {
		return err
	}
	if err := w.w.WriteByte('['); err != nil {
		return err
	}
	if err := w.space(); err != nil {
		return err
	}
	return w.w.WriteByte(']')
}

// OptionalSome writes an optional holding exactly one value, produced by
// calling fn once between the optional's brackets.
func (w *Writer) OptionalSome(fn func() error) error {
	if err := w.space(); err != nil {
		return err
	}
	if err := w.w.WriteByte('['); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	if err := w.space(); err != nil {
		return err
	}
	return w.w.WriteByte(']')
}

// SeqStart opens a sequence (vector).
func (w *Writer) SeqStart() error {
	if err := w.space(); err != nil {
		return err
	}
	return w.w.WriteByte('[')
}

// SeqEnd closes a sequence opened with SeqStart.
func (w *Writer) SeqEnd() error {
	return w.w.WriteByte(']')
}

// TupleStart opens a tuple or fixed structure.
func (w *Writer) TupleStart() error {
	if err := w.space(); err != nil {
		return err
	}
	return w.w.WriteByte('{')
}

// TupleEnd closes a tuple opened with TupleStart.
func (w *Writer) TupleEnd() error {
	return w.w.WriteByte('}')
}

// Bytes writes a byte vector in its compact hex-chunk form: a sequence
// whose elements are hexadecimal chunks rather than individually-framed
// bytes.
func (w *Writer) Bytes(b []byte) error {
	if err := w.SeqStart(); err != nil {
		return err
	}
	for off := 0; off < len(b); off += bytesPerChunk {
		end := off + bytesPerChunk
		if end > len(b) {
			end = len(b)
		}
		if err := w.space(); err != nil {
			return err
		}
		if _, err := w.w.Write(w.hex.Encode(b[off:end])); err != nil {
			return err
		}
	}
	return w.SeqEnd()
}

// Marker writes a single-byte marker token (preceded by the usual leading
// space) that does not belong to any of the primitive grammars above, such
// as the `$` that opens an RPC exception frame.
func (w *Writer) Marker(b byte) error {
	if err := w.space(); err != nil {
		return err
	}
	return w.w.WriteByte(b)
}

// EndMessage writes the terminating newline and flushes the underlying
// writer.
func (w *Writer) EndMessage() error {
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush flushes any buffered bytes without writing an end-of-message
// marker.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
