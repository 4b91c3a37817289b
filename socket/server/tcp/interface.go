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

// Package tcp is the raw net.Listener lifecycle a dispatcher listener binds:
// validate the config, open the socket, run an accept loop that hands each
// connection to a handler on its own goroutine, and track how many
// connections are currently open so the dispatcher can enforce its
// maximum-connections policy. It has no opinion about what the handler does
// with the connection; the RPC framing and non-blocking buffering live one
// layer up, in dispatcher.
package tcp

import (
	"context"
	"net"

	"github.com/nabbar/cuti/socket/config"
)

// UpdateConn is called on each accepted connection before Handler, letting
// the caller tune socket options (e.g. TCP keep-alive) before handing the
// connection off.
type UpdateConn func(net.Conn)

// Handler is called on its own goroutine for each accepted connection.
// ServerTcp closes the connection (if still open) once Handler returns.
type Handler func(net.Conn)

// ServerTcp is a bound TCP acceptor with a background accept loop.
type ServerTcp interface {
	// Listen binds the listening socket and starts the accept loop. It is
	// idempotent: calling it again while already running returns nil
	// without rebinding.
	Listen(ctx context.Context) error

	// Addr returns the bound address, or nil before the first successful
	// Listen.
	Addr() net.Addr

	// IsRunning reports whether the accept loop is currently active.
	IsRunning() bool

	// IsGone reports whether the server has never been started, or has
	// completed a full Shutdown with no connections left open.
	IsGone() bool

	// OpenConnections returns the number of connections currently accepted
	// and not yet returned from Handler.
	OpenConnections() int64

	// Shutdown stops accepting new connections and waits, up to ctx's
	// deadline, for in-flight Handler calls to return before force-closing
	// any still open.
	Shutdown(ctx context.Context) error

	// Done is closed once Shutdown has fully completed.
	Done() <-chan struct{}
}

// New validates cfg and constructs a ServerTcp that is not yet listening.
// update may be nil. handler must not be nil.
func New(update UpdateConn, handler Handler, cfg config.Server) (ServerTcp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	return newServer(update, handler, cfg), nil
}
