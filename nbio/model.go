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

package nbio

import (
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/cuti/ringbuf"
	"github.com/nabbar/cuti/scheduler"
)

type conn struct {
	net.Conn
	sch scheduler.Scheduler

	mu  sync.Mutex
	in  *ringbuf.Buffer
	out *ringbuf.Buffer

	writeSignal chan struct{}
	closed      chan struct{}
	closeOnce   sync.Once
	err         atomic.Value

	onReadable atomic.Pointer[func()]
	onDrained  atomic.Pointer[func()]

	readTotal  atomic.Int64
	writeTotal atomic.Int64
}

func newConn(ctx context.Context, sch scheduler.Scheduler, nc net.Conn, inCap, outCap int, policy ThroughputPolicy) *conn {
	c := &conn{
		Conn:        nc,
		sch:         sch,
		in:          ringbuf.New(inCap),
		out:         ringbuf.New(outCap),
		writeSignal: make(chan struct{}, 1),
		closed:      make(chan struct{}),
	}

	go c.reader(ctx)
	go c.writer(ctx)
	go c.watchParent(ctx)
	if policy.enabled() {
		go c.policeThroughput(ctx, policy)
	}
	return c
}

func (c *conn) watchParent(ctx context.Context) {
	select {
	case <-ctx.Done():
		c.fail(ctx.Err())
	case <-c.closed:
	}
}

func (c *conn) reader(ctx context.Context) {
	tmp := make([]byte, 32*1024)
	for {
		n, err := c.Conn.Read(tmp)
		if n > 0 {
			c.readTotal.Add(int64(n))
			chunk := make([]byte, n)
			copy(chunk, tmp[:n])
			done := make(chan struct{})
			c.sch.Post(func(context.Context) {
				c.mu.Lock()
				c.in.Write(chunk)
				c.mu.Unlock()
				c.fireCallback(&c.onReadable)
				close(done)
			})
			select {
			case <-done:
			case <-c.closed:
				return
			}
		}
		if err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *conn) writer(ctx context.Context) {
	for {
		select {
		case <-c.closed:
			return
		case <-c.writeSignal:
		}

		for {
			c.mu.Lock()
			if c.out.IsEmpty() {
				c.mu.Unlock()
				break
			}
			n, err := c.out.WriteTo(c.Conn)
			becameEmpty := c.out.IsEmpty()
			c.mu.Unlock()

			if n > 0 {
				c.writeTotal.Add(n)
			}
			if err != nil {
				c.fail(err)
				return
			}
			if becameEmpty {
				c.fireCallback(&c.onDrained)
				break
			}
			if n == 0 {
				break
			}
		}
	}
}

func (c *conn) fireCallback(slot *atomic.Pointer[func()]) {
	if fn := slot.Load(); fn != nil && *fn != nil {
		(*fn)()
	}
}

func (c *conn) policeThroughput(ctx context.Context, p ThroughputPolicy) {
	ticker := time.NewTicker(p.TickLength)
	defer ticker.Stop()

	var lastRead, lastWrite int64
	lowTicks := 0

	for {
		select {
		case <-c.closed:
			return
		case <-ticker.C:
			r := c.readTotal.Load()
			w := c.writeTotal.Load()
			delta := int(r-lastRead) + int(w-lastWrite)
			lastRead, lastWrite = r, w

			if delta < p.MinBytesPerTick {
				lowTicks++
			} else {
				lowTicks = 0
			}
			if lowTicks >= p.LowTicksLimit {
				c.fail(ErrThroughput)
				return
			}
		}
	}
}

func (c *conn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in.Read(p)
}

func (c *conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	n, err := c.out.Write(p)
	c.mu.Unlock()

	if n > 0 {
		select {
		case c.writeSignal <- struct{}{}:
		default:
		}
	}
	if err == io.ErrShortWrite {
		return n, err
	}
	return n, err
}

func (c *conn) OnReadable(fn func()) {
	c.onReadable.Store(&fn)
}

func (c *conn) OnDrained(fn func()) {
	c.onDrained.Store(&fn)
}

func (c *conn) Err() error {
	if v := c.err.Load(); v != nil {
		return v.(error)
	}
	return nil
}

func (c *conn) Closed() <-chan struct{} {
	return c.closed
}

func (c *conn) fail(err error) {
	if err != nil && err != io.EOF {
		c.err.Store(err)
	}
	c.closeOnce.Do(func() {
		_ = c.Conn.Close()
		close(c.closed)
	})
}

func (c *conn) Close() error {
	c.fail(nil)
	return nil
}
