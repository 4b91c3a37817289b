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
	"io"
	"net"
	"sync"
	"time"
)

type clientTcp struct {
	address string

	mu   sync.Mutex
	conn net.Conn
}

func (c *clientTcp) dial() (net.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	conn, err := net.Dial("tcp", c.address)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	return conn, nil
}

func (c *clientTcp) Write(p []byte) (int, error) {
	conn, err := c.dial()
	if err != nil {
		return 0, err
	}
	return conn.Write(p)
}

func (c *clientTcp) Read(p []byte) (int, error) {
	conn, err := c.dial()
	if err != nil {
		return 0, err
	}
	return conn.Read(p)
}

func (c *clientTcp) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *clientTcp) RemoteAddr() string {
	return c.address
}

func (c *clientTcp) Once(ctx context.Context, request []byte, fn func(io.Reader)) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}

	if dl, ok := ctx.Deadline(); ok {
		if err = conn.SetDeadline(dl); err != nil {
			return err
		}
	} else {
		if err = conn.SetDeadline(time.Time{}); err != nil {
			return err
		}
	}

	if len(request) > 0 {
		if _, err = conn.Write(request); err != nil {
			return err
		}
	}

	if fn != nil {
		fn(conn)
	}

	return ctx.Err()
}
