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

// Package tcp is the client half of the raw TCP transport: a lazily-dialed
// connection to a fixed endpoint, validated at construction but not opened
// until first use. It is what clientcache.Pool caches and rpc.Call writes
// requests to and reads replies from.
package tcp

import (
	"context"
	"errors"
	"io"
	"net"
)

// ErrAddress is returned by New when address is empty or does not resolve
// as a TCP address.
var ErrAddress = errors.New("tcp: invalid address")

// ClientTcp is a lazily-dialed TCP connection to a single fixed endpoint.
type ClientTcp interface {
	io.ReadWriteCloser

	// Once performs a single write-then-read-response exchange: it dials if
	// not already connected, writes request (skipped if empty), applies
	// ctx's deadline to the underlying connection, and invokes fn with the
	// connection as an io.Reader so the caller can decode a reply. fn may
	// be nil if the caller only needs to write.
	Once(ctx context.Context, request []byte, fn func(io.Reader)) error

	// RemoteAddr returns the endpoint address this client was created for.
	RemoteAddr() string
}

// New validates address and returns a ClientTcp that has not yet dialed.
func New(address string) (ClientTcp, error) {
	if address == "" {
		return nil, ErrAddress
	}
	if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
		return nil, ErrAddress
	}
	return &clientTcp{address: address}, nil
}
