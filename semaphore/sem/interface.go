/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

// Package sem provides a context-aware weighted semaphore used to bound the
// number of concurrent workers (connections, in-flight RPC requests) the
// dispatcher allows at once.
package sem

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Sem bounds concurrent work while behaving as a context.Context so it can be
// threaded through call chains that expect one (cancellation propagates from
// the parent context given to New).
type Sem interface {
	context.Context

	// NewWorker blocks until a slot is available or the context is done.
	NewWorker() error

	// NewWorkerTry acquires a slot without blocking; false means none is free.
	NewWorkerTry() bool

	// DeferWorker releases one previously acquired slot.
	DeferWorker()

	// DeferMain releases the semaphore's own context resources. Safe to call
	// more than once.
	DeferMain()

	// Weighted returns the configured concurrency limit (-1 means unlimited).
	Weighted() int64
}

// MaxSimultaneous is the default concurrency ceiling used when New is called
// with n == 0: four work slots per logical CPU.
func MaxSimultaneous() int {
	n := runtime.NumCPU() * 4
	if n < 1 {
		return 1
	}
	return n
}

// SetSimultaneous clamps n into [1, MaxSimultaneous()], substituting
// MaxSimultaneous() for any n <= 0.
func SetSimultaneous(n int) int64 {
	max := int64(MaxSimultaneous())
	if n <= 0 {
		return max
	}
	if int64(n) > max {
		return max
	}
	return int64(n)
}

// New creates a semaphore bound to ctx.
//
//   - n == 0 -> limit is MaxSimultaneous()
//   - n  < 0 -> unlimited (NewWorker/NewWorkerTry always succeed immediately)
//   - n  > 0 -> limit is exactly n
func New(ctx context.Context, n int) Sem {
	c, cancel := context.WithCancel(ctx)

	if n == 0 {
		n = MaxSimultaneous()
	}

	s := &sem{
		Context: c,
		cancel:  cancel,
		limit:   int64(n),
	}

	if n > 0 {
		s.w = semaphore.NewWeighted(int64(n))
	}

	return s
}

type sem struct {
	context.Context
	cancel context.CancelFunc
	limit  int64
	w      *semaphore.Weighted
}

func (s *sem) Weighted() int64 {
	return s.limit
}

func (s *sem) NewWorker() error {
	if s.w == nil {
		return nil
	}
	return s.w.Acquire(s.Context, 1)
}

func (s *sem) NewWorkerTry() bool {
	if s.w == nil {
		return true
	}
	return s.w.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	if s.w != nil {
		s.w.Release(1)
	}
}

func (s *sem) DeferMain() {
	s.cancel()
}
