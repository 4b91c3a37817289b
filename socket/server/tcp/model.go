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

package tcp

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nabbar/cuti/socket/config"
)

var (
	// ErrNilHandler is returned by New when handler is nil.
	ErrNilHandler = errors.New("tcp: handler must not be nil")

	// ErrAlreadyRunning is returned by Listen when called concurrently with
	// another in-flight Listen on the same server.
	ErrAlreadyRunning = errors.New("tcp: already running")
)

type server struct {
	update  UpdateConn
	handler Handler
	cfg     config.Server

	mu       sync.Mutex
	ln       net.Listener
	running  atomic.Bool
	everRan  atomic.Bool
	open     atomic.Int64
	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
}

func newServer(update UpdateConn, handler Handler, cfg config.Server) *server {
	return &server{update: update, handler: handler, cfg: cfg, done: make(chan struct{})}
}

func (s *server) Listen(ctx context.Context) error {
	s.mu.Lock()
	if s.running.Load() {
		s.mu.Unlock()
		return nil
	}

	ln, err := net.Listen(s.cfg.Network.Network(), s.cfg.Address)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.everRan.Store(true)
	s.done = make(chan struct{})
	s.doneOnce = sync.Once{}
	s.mu.Unlock()

	go s.acceptLoop(ctx)
	return nil
}

func (s *server) acceptLoop(ctx context.Context) {
	for {
		s.mu.Lock()
		ln := s.ln
		s.mu.Unlock()
		if ln == nil {
			return
		}

		conn, err := ln.Accept()
		if err != nil {
			s.running.Store(false)
			return
		}

		if d := s.cfg.ConIdleTimeout.Time(); d > 0 {
			conn = &idleConn{Conn: conn, idle: d}
		}

		if s.update != nil {
			s.update(conn)
		}

		s.open.Add(1)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.open.Add(-1)
			defer conn.Close()
			s.handler(conn)
		}()
	}
}

// idleConn arms a fresh read deadline before every Read, so a peer that
// stops sending for longer than the configured idle window gets its next
// read failed with a timeout and the connection torn down by the handler.
type idleConn struct {
	net.Conn
	idle time.Duration
}

func (c *idleConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.idle)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (s *server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *server) IsRunning() bool {
	return s.running.Load()
}

func (s *server) IsGone() bool {
	return !s.running.Load() && s.open.Load() == 0
}

func (s *server) OpenConnections() int64 {
	return s.open.Load()
}

func (s *server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.ln = nil
	s.mu.Unlock()

	s.running.Store(false)
	if ln != nil {
		_ = ln.Close()
	}

	waited := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waited)
	}()

	var err error
	select {
	case <-waited:
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.doneOnce.Do(func() { close(s.done) })
	return err
}

func (s *server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
