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

// Package dispatcher binds one or more TCP listeners to rpc.MethodMaps,
// running every accepted connection through a non-blocking, scheduler-driven
// wire/rpc loop while enforcing the policies a production RPC server needs:
// a cap on open connections (oldest evicted first), a cap on concurrently
// executing requests, and per-connection throughput policing.
package dispatcher

import (
	"context"
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"

	dspcfg "github.com/nabbar/cuti/config"
	"github.com/nabbar/cuti/logger"
	"github.com/nabbar/cuti/rpc"
	sckcfg "github.com/nabbar/cuti/socket/config"
)

// ErrAlreadyBound is returned by AddListener when called twice for the same
// address.
var ErrAlreadyBound = errors.New("dispatcher: endpoint already bound")

// ErrShutdown is returned by AddListener once the dispatcher has begun
// shutting down.
var ErrShutdown = errors.New("dispatcher: shutting down")

// Dispatcher multiplexes RPC traffic across any number of bound TCP
// listeners, sharing one connection cap, one concurrent-request cap, and one
// throughput policy across all of them. It satisfies config.Runnable.
type Dispatcher interface {
	// AddListener binds cfg and serves methods on it. The returned address
	// is the concrete bound address (useful when cfg.Address uses port 0).
	AddListener(ctx context.Context, cfg sckcfg.Server, methods rpc.MethodMap) (net.Addr, error)

	// OpenConnections returns the number of connections currently accepted
	// across every bound listener.
	OpenConnections() int

	// InFlightRequests returns the number of requests currently executing
	// inside a Method call, across every bound listener.
	InFlightRequests() int

	// Shutdown stops accepting new connections on every listener and waits,
	// up to ctx's deadline, for in-flight work to finish.
	Shutdown(ctx context.Context) error

	// Registry returns the Dispatcher's private Prometheus registry.
	Registry() *prometheus.Registry
}

// New constructs a Dispatcher from opts, logging through log (log may be
// nil, in which case the dispatcher stays silent).
func New(opts dspcfg.Options, log logger.FuncLog) Dispatcher {
	return newDispatcher(opts, log)
}
