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

// Reader decodes values in the wire format from an underlying io.Reader.
type Reader struct {
	r   *bufio.Reader
	hex libenc.Coder
}

// NewReader wraps r for wire-format decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), hex: enchex.New()}
}

func isSkippableWS(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// skipWS consumes tab/space/carriage-return bytes, leaving the first byte
// that is neither whitespace nor consumed unread.
func (r *Reader) skipWS() error {
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return err
		}
		if !isSkippableWS(b) {
			return r.r.UnreadByte()
		}
	}
}

// peek skips inter-token whitespace and returns the next byte without
// consuming it.
func (r *Reader) peek() (byte, error) {
	if err := r.skipWS(); err != nil {
		return 0, err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return b, r.r.UnreadByte()
}

// Bool reads a boolean/flag primitive.
func (r *Reader) Bool() (bool, error) {
	if err := r.skipWS(); err != nil {
		return false, err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case '*':
		return true, nil
	case '!':
		return false, nil
	case '\n':
		return false, ErrUnexpectedEOM
	default:
		return false, ErrSyntax
	}
}

func (r *Reader) readDigits() (string, error) {
	var digits []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(digits) > 0 {
				break
			}
			return "", err
		}
		if !isDigit(b) {
			_ = r.r.UnreadByte()
			break
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return "", ErrSyntax
	}
	if len(digits) > 1 && digits[0] == '0' {
		return "", ErrSyntax
	}
	return string(digits), nil
}

func maxUint(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// Uint reads an unsigned integer primitive, failing with ErrOverflow if the
// value does not fit bits.
func (r *Reader) Uint(bits int) (uint64, error) {
	if err := r.skipWS(); err != nil {
		return 0, err
	}
	if b, err := r.peekRaw(); err == nil && b == '\n' {
		return 0, ErrUnexpectedEOM
	}
	s, err := r.readDigits()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrOverflow
	}
	if v > maxUint(bits) {
		return 0, ErrOverflow
	}
	return v, nil
}

// Int reads a signed integer primitive, failing with ErrOverflow if the
// value does not fit bits. The most-negative value is recovered from its
// unsigned-max+1 encoding without ever holding an out-of-range unsigned
// intermediate.
func (r *Reader) Int(bits int) (int64, error) {
	if err := r.skipWS(); err != nil {
		return 0, err
	}
	b, err := r.peekRaw()
	if err != nil {
		return 0, err
	}
	if b == '\n' {
		return 0, ErrUnexpectedEOM
	}
	neg := false
	if b == '-' {
		neg = true
		if _, err := r.r.ReadByte(); err != nil {
			return 0, err
		}
	}
	s, err := r.readDigits()
	if err != nil {
		return 0, err
	}
	mag, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrOverflow
	}

	limit := uint64(1) << uint(bits-1)
	if neg {
		if mag > limit {
			return 0, ErrOverflow
		}
		if mag == limit {
			return -(int64(limit - 1)) - 1, nil
		}
		return -int64(mag), nil
	}
	if mag > limit-1 {
		return 0, ErrOverflow
	}
	return int64(mag), nil
}

// peekRaw returns the next byte without skipping whitespace and without
// consuming it.
func (r *Reader) peekRaw() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return b, r.r.UnreadByte()
}

// String reads a string primitive, unescaping `\t`, `\n`, `\r`, `\\`, `\"`
// and `\xHH` sequences.
func (r *Reader) String() (string, error) {
	if err := r.skipWS(); err != nil {
		return "", err
	}
	open, err := r.r.ReadByte()
	if err != nil {
		return "", err
	}
	if open == '\n' {
		return "", ErrUnexpectedEOM
	}
	if open != '"' {
		return "", ErrSyntax
	}

	var out []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '"' {
			return string(out), nil
		}
		if b == '\n' {
			return "", ErrUnexpectedEOM
		}
		if b != '\\' {
			out = append(out, b)
			continue
		}
		esc, err := r.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch esc {
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case 'x':
			hi, err := r.r.ReadByte()
			if err != nil {
				return "", err
			}
			lo, err := r.r.ReadByte()
			if err != nil {
				return "", err
			}
			v, err := strconv.ParseUint(string([]byte{hi, lo}), 16, 8)
			if err != nil {
				return "", ErrSyntax
			}
			out = append(out, byte(v))
		default:
			return "", ErrSyntax
		}
	}
}

// Ident reads a bare identifier primitive.
func (r *Reader) Ident() (string, error) {
	if err := r.skipWS(); err != nil {
		return "", err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return "", err
	}
	if b == '\n' {
		return "", ErrUnexpectedEOM
	}
	if !isIdentStart(b) {
		return "", ErrSyntax
	}
	out := []byte{b}
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if !isIdentCont(b) {
			_ = r.r.UnreadByte()
			break
		}
		out = append(out, b)
	}
	return string(out), nil
}

// TryMarker reports whether the next token is the single-byte marker b,
// consuming it if so. If the next byte differs it is left unread so the
// caller can fall back to decoding the regular grammar at that position.
func (r *Reader) TryMarker(b byte) (bool, error) {
	got, err := r.peek()
	if err != nil {
		return false, err
	}
	if got != b {
		return false, nil
	}
	_, _ = r.r.ReadByte()
	return true, nil
}

// SkipToEndOfMessage discards raw bytes up to and including the next `\n`.
// Because an unescaped newline byte can never occur inside a well-formed
// message (a literal newline inside a string must be written as the two
// characters `\` `n`), this is always safe even mid-argument-list, and is
// how a server recovers framing after rejecting an unknown method without
// having to understand that method's argument grammar.
func (r *Reader) SkipToEndOfMessage() error {
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func (r *Reader) expectByte(want byte) error {
	if err := r.skipWS(); err != nil {
		return err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return err
	}
	if b == '\n' && want != '\n' {
		return ErrUnexpectedEOM
	}
	if b != want {
		return ErrSyntax
	}
	return nil
}

// Optional reads an optional value. If present, fn is invoked to decode the
// single contained value. It returns whether a value was present.
func (r *Reader) Optional(fn func() error) (bool, error) {
	if err := r.expectByte('['); err != nil {
		return false, err
	}
	b, err := r.peek()
	if err != nil {
		return false, err
	}
	if b == ']' {
		_, _ = r.r.ReadByte()
		return false, nil
	}
	if b == '\n' {
		return false, ErrUnexpectedEOM
	}
	if err := fn(); err != nil {
		return false, err
	}
	if err := r.expectByte(']'); err != nil {
		return false, err
	}
	return true, nil
}

// SeqStart opens a sequence (vector).
func (r *Reader) SeqStart() error {
	return r.expectByte('[')
}

// SeqNext reports whether another sequence element follows. When it returns
// false the sequence's closing `]` has already been consumed.
func (r *Reader) SeqNext() (bool, error) {
	b, err := r.peek()
	if err != nil {
		return false, err
	}
	if b == ']' {
		_, _ = r.r.ReadByte()
		return false, nil
	}
	if b == '\n' {
		return false, ErrUnexpectedEOM
	}
	return true, nil
}

// TupleStart opens a tuple or fixed structure.
func (r *Reader) TupleStart() error {
	return r.expectByte('{')
}

// TupleEnd closes a tuple opened with TupleStart.
func (r *Reader) TupleEnd() error {
	return r.expectByte('}')
}

func (r *Reader) readRawToken() ([]byte, error) {
	var out []byte
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(out) > 0 {
				return out, nil
			}
			return nil, err
		}
		if isSkippableWS(b) || b == '\n' || b == ']' || b == '[' {
			_ = r.r.UnreadByte()
			break
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil, ErrSyntax
	}
	return out, nil
}

// Bytes reads a byte vector in its compact hex-chunk form.
func (r *Reader) Bytes() ([]byte, error) {
	if err := r.SeqStart(); err != nil {
		return nil, err
	}
	out := make([]byte, 0)
	for {
		more, err := r.SeqNext()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		tok, err := r.readRawToken()
		if err != nil {
			return nil, err
		}
		chunk, err := r.hex.Decode(tok)
		if err != nil {
			return nil, ErrSyntax
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// EndMessage consumes the terminating newline. It fails with ErrSyntax if
// unconsumed, non-whitespace bytes remain before it.
func (r *Reader) EndMessage() error {
	return r.expectByte('\n')
}
