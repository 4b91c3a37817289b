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
	"context"
	"errors"
	"io"
	"net"

	"github.com/nabbar/cuti/async"
	"github.com/nabbar/cuti/nbio"
	"github.com/nabbar/cuti/rpc"
	"github.com/nabbar/cuti/scheduler"
	"github.com/nabbar/cuti/wire"
)

// serveConn runs one connection's whole lifetime: build its scheduler and
// non-blocking buffering, then loop reading requests and dispatching them
// to methods until the peer disconnects or framing breaks. It never
// pipelines: the request/reply framing has no correlation id, so a
// connection has at most one request in flight.
func (d *dispatcher) serveConn(parent context.Context, conn net.Conn, methods rpc.MethodMap) {
	d.tracker.admit(conn)
	d.metrics.openConnections.Set(float64(d.tracker.len()))
	defer func() {
		d.tracker.release(conn)
		d.metrics.openConnections.Set(float64(d.tracker.len()))
	}()

	// The connection is one async.Group cancellation scope: the
	// dispatcher's context cancels the group, and the group's context
	// cancels the scheduler, the buffers, and the per-request method
	// subroutine rpc spawns under it. Tearing down any level tears down
	// everything below it, never above it.
	grp := async.NewGroup(parent)
	defer grp.Cancel()
	ctx := grp.Context()

	sch := scheduler.New(ctx)
	defer sch.Stop()

	nb := nbio.New(ctx, sch, conn, d.bufSize, d.bufSize, d.throughput)
	defer nb.Close()

	adapter := newBlockingAdapter(nb)
	in := wire.NewReader(adapter)
	out := wire.NewWriter(adapter)

	for {
		if err := ctx.Err(); err != nil {
			return
		}

		if err := d.sem.NewWorker(); err != nil {
			return
		}
		d.inFlight.Add(1)
		d.metrics.inFlight.Set(float64(d.inFlight.Load()))

		err := rpc.HandleRequestHooked(ctx, methods, in, out, func(kind string) {
			d.metrics.exceptions.WithLabelValues(kind).Inc()
		})

		d.inFlight.Add(-1)
		d.metrics.inFlight.Set(float64(d.inFlight.Load()))
		d.sem.DeferWorker()

		if err != nil {
			if !errors.Is(err, io.EOF) && d.log != nil {
				if l := d.log(); l != nil {
					l.Error("rpc request failed, closing connection", nil, err)
				}
			}
			return
		}
	}
}
