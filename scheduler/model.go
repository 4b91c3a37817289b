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

package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type alarm struct {
	ticket    Ticket
	deadline  time.Time
	fn        func(ctx context.Context)
	cancelled bool
	index     int
}

// alarmHeap orders pending alarms by deadline; it is only ever touched from
// the loop goroutine.
type alarmHeap []*alarm

func (h alarmHeap) Len() int            { return len(h) }
func (h alarmHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h alarmHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *alarmHeap) Push(x interface{}) {
	a := x.(*alarm)
	a.index = len(*h)
	*h = append(*h, a)
}
func (h *alarmHeap) Pop() interface{} {
	old := *h
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return a
}

type scheduler struct {
	context.Context
	cancel context.CancelFunc

	next   atomic.Int64
	done   chan struct{}
	submit chan *alarm

	mu      sync.Mutex
	pending map[Ticket]*alarm
}

func newScheduler(parent context.Context) *scheduler {
	ctx, cancel := context.WithCancel(parent)
	s := &scheduler{
		Context: ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		submit:  make(chan *alarm, 64),
		pending: make(map[Ticket]*alarm),
	}
	go s.loop()
	return s
}

func (s *scheduler) nextTicket() Ticket {
	return Ticket(s.next.Add(1))
}

func (s *scheduler) After(d time.Duration, fn func(ctx context.Context)) Ticket {
	if fn == nil {
		return NoTicket
	}
	if d < 0 {
		d = 0
	}
	a := &alarm{ticket: s.nextTicket(), deadline: time.Now().Add(d), fn: fn}
	return s.enqueue(a)
}

func (s *scheduler) Post(fn func(ctx context.Context)) Ticket {
	return s.After(0, fn)
}

func (s *scheduler) enqueue(a *alarm) Ticket {
	select {
	case s.submit <- a:
		return a.ticket
	case <-s.Done():
		return NoTicket
	}
}

func (s *scheduler) Cancel(t Ticket) bool {
	if t == NoTicket {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.pending[t]
	if !ok {
		return false
	}
	a.cancelled = true
	delete(s.pending, t)
	return true
}

func (s *scheduler) Stop() {
	s.cancel()
}

func (s *scheduler) loop() {
	defer close(s.done)

	h := &alarmHeap{}
	heap.Init(h)
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	armed := false

	rearm := func() {
		if armed && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		armed = false
		if h.Len() == 0 {
			return
		}
		d := time.Until((*h)[0].deadline)
		if d < 0 {
			d = 0
		}
		timer.Reset(d)
		armed = true
	}

	track := func(a *alarm) {
		s.mu.Lock()
		s.pending[a.ticket] = a
		s.mu.Unlock()
		heap.Push(h, a)
		rearm()
	}

	fire := func(a *alarm) {
		s.mu.Lock()
		delete(s.pending, a.ticket)
		cancelled := a.cancelled
		s.mu.Unlock()
		if !cancelled {
			a.fn(s.Context)
		}
	}

	for {
		select {
		case <-s.Done():
			for h.Len() > 0 {
				a := heap.Pop(h).(*alarm)
				s.mu.Lock()
				delete(s.pending, a.ticket)
				s.mu.Unlock()
			}
			return

		case a := <-s.submit:
			track(a)

		case <-timer.C:
			armed = false
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].deadline.After(now) {
				fire(heap.Pop(h).(*alarm))
			}
			rearm()
		}
	}
}
