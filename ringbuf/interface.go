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

// Package ringbuf implements the fixed-capacity circular byte buffer that
// backs the non-blocking socket buffers in nbio. A Buffer never reallocates:
// it holds a data region (bytes written but not yet read) and a slack region
// (free space available to the next write) inside one preallocated slice,
// wrapping both regions around the slice's ends as bytes are produced and
// consumed.
package ringbuf

import "io"

// Buffer is a fixed-capacity circular byte buffer. The zero value is not
// usable; construct one with New. A Buffer is not safe for concurrent use by
// multiple goroutines without external locking.
type Buffer struct {
	buf []byte
	r   int
	n   int
}

// New allocates a Buffer with the given capacity. A non-positive capacity is
// clamped to a small minimum so the buffer always has room for at least one
// byte.
func New(capacity int) *Buffer {
	if capacity < 64 {
		capacity = 64
	}
	return &Buffer{buf: make([]byte, capacity)}
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Len returns the number of bytes currently held in the data region.
func (b *Buffer) Len() int {
	return b.n
}

// Free returns the number of bytes available in the slack region.
func (b *Buffer) Free() int {
	return len(b.buf) - b.n
}

// IsFull reports whether the slack region has no room left.
func (b *Buffer) IsFull() bool {
	return b.n == len(b.buf)
}

// IsEmpty reports whether the data region is empty.
func (b *Buffer) IsEmpty() bool {
	return b.n == 0
}

// Reset discards the data region, returning the buffer to empty.
func (b *Buffer) Reset() {
	b.r = 0
	b.n = 0
}

// Write copies as much of p as fits in the slack region into the buffer and
// returns the number of bytes copied. Unlike bytes.Buffer, Write never grows
// the backing slice: once Free() reaches zero it returns io.ErrShortWrite
// alongside the partial count, so the caller (the outbound nbio buffer under
// throughput policing) knows to retry after the next drain.
func (b *Buffer) Write(p []byte) (int, error) {
	n := b.writeSlice(p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (b *Buffer) writeSlice(p []byte) int {
	free := b.Free()
	if free == 0 || len(p) == 0 {
		return 0
	}
	if len(p) > free {
		p = p[:free]
	}
	w := (b.r + b.n) % len(b.buf)
	copied := 0
	for copied < len(p) {
		chunk := copy(b.buf[w:], p[copied:])
		copied += chunk
		w = (w + chunk) % len(b.buf)
	}
	b.n += copied
	return copied
}

// Read copies up to len(p) bytes from the data region into p. It never
// blocks: when the buffer is empty it returns (0, nil), since an empty
// non-blocking buffer is a normal, transient state rather than end-of-stream.
// Callers polling Read should treat (0, nil) as "nothing ready yet", not EOF.
func (b *Buffer) Read(p []byte) (int, error) {
	n := b.readSlice(p)
	return n, nil
}

func (b *Buffer) readSlice(p []byte) int {
	if b.n == 0 || len(p) == 0 {
		return 0
	}
	if len(p) > b.n {
		p = p[:b.n]
	}
	copied := 0
	for copied < len(p) {
		chunk := copy(p[copied:], b.buf[b.r:])
		copied += chunk
		b.r = (b.r + chunk) % len(b.buf)
	}
	b.n -= copied
	return copied
}

// Discard drops up to n bytes from the front of the data region without
// copying them out, returning the number actually discarded.
func (b *Buffer) Discard(n int) int {
	if n > b.n {
		n = b.n
	}
	b.r = (b.r + n) % len(b.buf)
	b.n -= n
	return n
}

// ReadFrom fills the slack region directly from r, making a single Read call
// against r sized to the currently free contiguous span. It satisfies
// io.ReaderFrom so nbio can hand it a net.Conn directly.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	if b.IsFull() {
		return 0, nil
	}
	w := (b.r + b.n) % len(b.buf)
	span := len(b.buf) - w
	if span > b.Free() {
		span = b.Free()
	}
	n, err := r.Read(b.buf[w : w+span])
	b.n += n
	return int64(n), err
}

// WriteTo drains the data region directly into w, making a single Write call
// against w sized to the currently held contiguous span. It satisfies
// io.WriterTo so nbio can hand it a net.Conn directly.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.IsEmpty() {
		return 0, nil
	}
	span := len(b.buf) - b.r
	if span > b.n {
		span = b.n
	}
	n, err := w.Write(b.buf[b.r : b.r+span])
	b.r = (b.r + n) % len(b.buf)
	b.n -= n
	return int64(n), err
}
