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
	"container/list"
	"net"
	"sync"
)

// connTracker bounds the number of concurrently open connections across
// every listener a Dispatcher owns. Over capacity, the oldest still-open
// connection is closed to make room for the new one, so one noisy peer
// opening many short-lived connections cannot starve the others out
// forever.
type connTracker struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	elems    map[net.Conn]*list.Element
}

func newConnTracker(capacity int) *connTracker {
	return &connTracker{
		capacity: capacity,
		order:    list.New(),
		elems:    make(map[net.Conn]*list.Element),
	}
}

// admit registers conn as open, evicting (and closing) the oldest open
// connection first if the tracker is already at capacity.
func (t *connTracker) admit(conn net.Conn) {
	t.mu.Lock()
	var evict net.Conn
	if t.capacity > 0 && t.order.Len() >= t.capacity {
		if oldest := t.order.Front(); oldest != nil {
			evict = oldest.Value.(net.Conn)
			t.order.Remove(oldest)
			delete(t.elems, evict)
		}
	}
	t.elems[conn] = t.order.PushBack(conn)
	t.mu.Unlock()

	if evict != nil {
		_ = evict.Close()
	}
}

func (t *connTracker) release(conn net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.elems[conn]; ok {
		t.order.Remove(e)
		delete(t.elems, conn)
	}
}

func (t *connTracker) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Len()
}

// closeAll force-closes every currently tracked connection, used during
// Shutdown once listeners have stopped accepting new ones.
func (t *connTracker) closeAll() {
	t.mu.Lock()
	conns := make([]net.Conn, 0, t.order.Len())
	for e := t.order.Front(); e != nil; e = e.Next() {
		conns = append(conns, e.Value.(net.Conn))
	}
	t.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
