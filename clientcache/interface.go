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

// Package clientcache is the bounded, LRU-evicted pool of idle RPC clients
// that rpc_client.call draws from: a map from endpoint to a stack of idle
// connections. Eviction is strict LRU over individual cached clients (one
// entry per client, not per endpoint), and entries additionally expire on
// an idle TTL so a connection that survived eviction pressure doesn't sit
// open forever against a server that may have long since closed it.
package clientcache

import (
	"context"
	"io"
	"time"
)

// Pool is a bounded cache of idle clients of type C, keyed by endpoint.
type Pool[C io.Closer] interface {
	// Obtain removes and returns the most recently stored idle client for
	// endpoint, if any. The caller owns the returned client once Obtain
	// returns true.
	Obtain(endpoint string) (C, bool)

	// Store adds c as the most-recently-used idle client for endpoint. If
	// the pool is over capacity afterwards, the globally least-recently-used
	// client across all endpoints is evicted and closed.
	Store(endpoint string, c C)

	// InvalidateEndpoint closes and removes every cached client for
	// endpoint. Called after a protocol, I/O, or serialization failure so a
	// broken endpoint's other idle connections aren't handed out next.
	InvalidateEndpoint(endpoint string)

	// Len returns the number of clients currently cached across all
	// endpoints.
	Len() int

	// Close stops the idle-TTL sweeper and closes every cached client.
	Close() error
}

// New creates a Pool bounded to capacity entries, additionally expiring any
// entry that has sat idle longer than idleTTL. A non-positive idleTTL
// disables TTL expiry and leaves eviction purely LRU-driven.
func New[C io.Closer](ctx context.Context, capacity int, idleTTL time.Duration) Pool[C] {
	return newPool[C](ctx, capacity, idleTTL)
}
