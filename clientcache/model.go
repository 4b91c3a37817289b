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

package clientcache

import (
	"container/list"
	"context"
	"io"
	"sync"
	"time"

	libtck "github.com/nabbar/cuti/runner/ticker"
)

type entry[C io.Closer] struct {
	endpoint string
	client   C
	storedAt time.Time
	elem     *list.Element
}

type pool[C io.Closer] struct {
	mu       sync.Mutex
	capacity int
	idleTTL  time.Duration
	ll       *list.List
	stacks   map[string][]*entry[C]

	sweeper libtck.Ticker
}

func newPool[C io.Closer](ctx context.Context, capacity int, idleTTL time.Duration) *pool[C] {
	if capacity < 1 {
		capacity = 1
	}
	p := &pool[C]{
		capacity: capacity,
		idleTTL:  idleTTL,
		ll:       list.New(),
		stacks:   make(map[string][]*entry[C]),
	}
	if idleTTL > 0 {
		interval := idleTTL / 4
		if interval < time.Millisecond {
			interval = idleTTL
		}
		p.sweeper = libtck.New(interval, func(context.Context, *time.Ticker) error {
			p.expire(idleTTL)
			return nil
		})
		_ = p.sweeper.Start(ctx)
	}
	return p
}

func (p *pool[C]) expire(idleTTL time.Duration) {
	p.mu.Lock()
	cutoff := time.Now().Add(-idleTTL)
	var stale []*entry[C]
	for e := p.ll.Back(); e != nil; {
		prev := e.Prev()
		ent := e.Value.(*entry[C])
		if ent.storedAt.After(cutoff) {
			break
		}
		p.removeLocked(ent)
		stale = append(stale, ent)
		e = prev
	}
	p.mu.Unlock()

	for _, ent := range stale {
		_ = ent.client.Close()
	}
}

// removeLocked detaches ent from both the LRU list and its endpoint stack.
// Caller must hold p.mu.
func (p *pool[C]) removeLocked(ent *entry[C]) {
	p.ll.Remove(ent.elem)
	s := p.stacks[ent.endpoint]
	for i, v := range s {
		if v == ent {
			s = append(s[:i], s[i+1:]...)
			break
		}
	}
	if len(s) == 0 {
		delete(p.stacks, ent.endpoint)
	} else {
		p.stacks[ent.endpoint] = s
	}
}

func (p *pool[C]) Obtain(endpoint string) (C, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stacks[endpoint]
	if len(s) == 0 {
		var zero C
		return zero, false
	}
	ent := s[len(s)-1]
	p.removeLocked(ent)
	return ent.client, true
}

func (p *pool[C]) Store(endpoint string, c C) {
	p.mu.Lock()
	ent := &entry[C]{endpoint: endpoint, client: c, storedAt: time.Now()}
	ent.elem = p.ll.PushFront(ent)
	p.stacks[endpoint] = append(p.stacks[endpoint], ent)

	var evicted *entry[C]
	if p.ll.Len() > p.capacity {
		back := p.ll.Back()
		if back != nil {
			evicted = back.Value.(*entry[C])
			p.removeLocked(evicted)
		}
	}
	p.mu.Unlock()

	if evicted != nil {
		_ = evicted.client.Close()
	}
}

func (p *pool[C]) InvalidateEndpoint(endpoint string) {
	p.mu.Lock()
	s := p.stacks[endpoint]
	delete(p.stacks, endpoint)
	for _, ent := range s {
		p.ll.Remove(ent.elem)
	}
	p.mu.Unlock()

	for _, ent := range s {
		_ = ent.client.Close()
	}
}

func (p *pool[C]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ll.Len()
}

func (p *pool[C]) Close() error {
	if p.sweeper != nil {
		_ = p.sweeper.Stop(context.Background())
	}

	p.mu.Lock()
	all := make([]*entry[C], 0, p.ll.Len())
	for e := p.ll.Front(); e != nil; e = e.Next() {
		all = append(all, e.Value.(*entry[C]))
	}
	p.ll.Init()
	p.stacks = make(map[string][]*entry[C])
	p.mu.Unlock()

	for _, ent := range all {
		_ = ent.client.Close()
	}
	return nil
}
