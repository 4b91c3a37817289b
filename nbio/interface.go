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

// Package nbio layers a non-blocking, throughput-policed byte stream on top
// of a net.Conn. Reads and writes are buffered through a ringbuf.Buffer in
// each direction; a background goroutine per direction does the actual
// blocking syscall so application code only ever touches the buffers, which
// are driven from the owning scheduler.Scheduler so callback invocation
// stays single-threaded per connection.
package nbio

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/nabbar/cuti/scheduler"
)

// ErrThroughput is the error a Conn closes itself with when the peer's
// effective transfer rate stays below the configured policy for too long.
var ErrThroughput = errors.New("nbio: throughput below policy, connection closed")

// ThroughputPolicy bounds how slow a connection is allowed to be before it
// gets reclaimed. A policy is disabled (no policing) when TickLength or
// LowTicksLimit is zero.
type ThroughputPolicy struct {
	// MinBytesPerTick is the minimum combined read+write byte count a
	// connection must sustain per tick to be considered healthy.
	MinBytesPerTick int

	// LowTicksLimit is how many consecutive ticks may fall below
	// MinBytesPerTick before the connection is closed.
	LowTicksLimit int

	// TickLength is the sampling interval.
	TickLength time.Duration
}

func (p ThroughputPolicy) enabled() bool {
	return p.TickLength > 0 && p.LowTicksLimit > 0
}

// Conn is a non-blocking, buffered wrapper around a net.Conn.
type Conn interface {
	// Read drains up to len(p) bytes already received from the peer.
	// It never blocks: on an empty input buffer it returns (0, nil).
	Read(p []byte) (int, error)

	// Write enqueues p for transmission. It copies as much of p as the
	// output buffer has room for; if it returns less than len(p) along
	// with io.ErrShortWrite, the caller is applying backpressure and
	// should wait for OnDrained before retrying the remainder.
	Write(p []byte) (int, error)

	// OnReadable registers fn to run (on the owning scheduler) every time
	// new bytes land in the input buffer. Passing nil clears it.
	OnReadable(fn func())

	// OnDrained registers fn to run (on the owning scheduler) every time
	// the output buffer empties out after having held data.
	OnDrained(fn func())

	// RemoteAddr returns the underlying connection's remote address.
	RemoteAddr() net.Addr

	// Err returns the error that caused the connection to close itself,
	// or nil if it is still open or was closed explicitly via Close.
	Err() error

	// Closed is closed once the connection has fully shut down.
	Closed() <-chan struct{}

	// Close shuts down both directions and the underlying net.Conn.
	Close() error
}

// New wraps conn with non-blocking buffering and throughput policing, driven
// by sch. The background read/write goroutines and the throughput checker
// all stop once sch's context is cancelled or Close is called.
func New(ctx context.Context, sch scheduler.Scheduler, conn net.Conn, inCap, outCap int, policy ThroughputPolicy) Conn {
	return newConn(ctx, sch, conn, inCap, outCap, policy)
}
