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
	"net"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/cuti/async"
	dspcfg "github.com/nabbar/cuti/config"
	"github.com/nabbar/cuti/logger"
	"github.com/nabbar/cuti/nbio"
	"github.com/nabbar/cuti/rpc"
	"github.com/nabbar/cuti/semaphore/sem"
	sckcfg "github.com/nabbar/cuti/socket/config"
	tcp "github.com/nabbar/cuti/socket/server/tcp"
)

type dispatcher struct {
	log        logger.FuncLog
	bufSize    int
	throughput nbio.ThroughputPolicy

	sem      sem.Sem
	tracker  *connTracker
	metrics  *metrics
	inFlight atomic.Int64

	mu        sync.Mutex
	listeners map[string]tcp.ServerTcp
	shutdown  bool

	cancel context.CancelFunc
}

func newDispatcher(opts dspcfg.Options, log logger.FuncLog) *dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &dispatcher{
		log:        log,
		bufSize:    int(opts.BufSize.Uint32()),
		throughput: opts.Throughput.Policy(),
		sem:        sem.New(ctx, opts.MaxConcurrentRequests),
		tracker:    newConnTracker(opts.MaxConnections),
		metrics:    newMetrics(),
		listeners:  make(map[string]tcp.ServerTcp),
		cancel:     cancel,
	}
}

func (d *dispatcher) AddListener(ctx context.Context, cfg sckcfg.Server, methods rpc.MethodMap) (net.Addr, error) {
	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return nil, ErrShutdown
	}
	if _, ok := d.listeners[cfg.Address]; ok {
		d.mu.Unlock()
		return nil, ErrAlreadyBound
	}
	d.mu.Unlock()

	srv, err := tcp.New(nil, func(conn net.Conn) {
		d.serveConn(ctx, conn, methods)
	}, cfg)
	if err != nil {
		return nil, err
	}

	if err = srv.Listen(ctx); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.listeners[cfg.Address] = srv
	d.mu.Unlock()

	return srv.Addr(), nil
}

func (d *dispatcher) OpenConnections() int {
	return d.tracker.len()
}

func (d *dispatcher) Registry() *prometheus.Registry {
	return d.metrics.Registry()
}

func (d *dispatcher) InFlightRequests() int {
	return int(d.inFlight.Load())
}

func (d *dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return nil
	}
	d.shutdown = true
	listeners := make([]tcp.ServerTcp, 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	// Every listener shuts down as its own subroutine, and Stitch joins
	// them against ctx's deadline so one slow listener cannot serialize
	// the others. HandleInParent keeps a failing listener from cancelling
	// its siblings mid-shutdown; Stitch still reports the first error.
	grp := async.NewGroup(context.Background())
	defer grp.Cancel()

	subs := make([]async.Waiter, 0, len(listeners))
	for _, l := range listeners {
		l := l
		subs = append(subs, async.Go(grp, async.HandleInParent, func(c context.Context) (struct{}, error) {
			return struct{}{}, l.Shutdown(ctx)
		}))
	}
	firstErr := async.Stitch(ctx, subs...)

	d.tracker.closeAll()
	d.sem.DeferMain()
	d.cancel()

	return firstErr
}
