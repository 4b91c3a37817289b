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

package dispatcher

import (
	"io"

	"github.com/nabbar/cuti/nbio"
)

// blockingAdapter turns nbio.Conn's never-blocks Read/backpressured Write
// into the ordinary blocking io.ReadWriter that wire.Reader/wire.Writer (and
// the bufio readers/writers they wrap) expect. It owns no goroutine of its
// own: it only waits on the readiness channels nbio's callbacks feed.
type blockingAdapter struct {
	conn    nbio.Conn
	ready   chan struct{}
	drained chan struct{}
}

func newBlockingAdapter(conn nbio.Conn) *blockingAdapter {
	a := &blockingAdapter{
		conn:    conn,
		ready:   make(chan struct{}, 1),
		drained: make(chan struct{}, 1),
	}
	conn.OnReadable(func() { notify(a.ready) })
	conn.OnDrained(func() { notify(a.drained) })
	return a
}

func notify(c chan struct{}) {
	select {
	case c <- struct{}{}:
	default:
	}
}

func (a *blockingAdapter) Read(p []byte) (int, error) {
	for {
		n, err := a.conn.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		select {
		case <-a.ready:
		case <-a.conn.Closed():
			if cerr := a.conn.Err(); cerr != nil {
				return 0, cerr
			}
			return 0, io.EOF
		}
	}
}

func (a *blockingAdapter) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := a.conn.Write(p[total:])
		total += n
		if err != nil && err != io.ErrShortWrite {
			return total, err
		}
		if total < len(p) {
			select {
			case <-a.drained:
			case <-a.conn.Closed():
				if cerr := a.conn.Err(); cerr != nil {
					return total, cerr
				}
				return total, io.ErrClosedPipe
			}
		}
	}
	return total, nil
}
