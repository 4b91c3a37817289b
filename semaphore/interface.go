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

// Package semaphore exposes the module-wide Semaphore contract: a
// context-bound pool of worker slots with a WaitAll barrier. The sem
// sub-package holds the weighted implementation; this package wraps it so
// callers that fan work out (the log hook aggregator, test drivers) can
// also wait for every started worker to finish.
package semaphore

import (
	"context"

	libsem "github.com/nabbar/cuti/semaphore/sem"
)

// Semaphore bounds concurrent workers and can wait for all of them.
type Semaphore interface {
	libsem.Sem

	// WaitAll blocks until every acquired worker slot has been released,
	// or the context is done.
	WaitAll() error
}

// New creates a Semaphore bound to ctx with n worker slots (n == 0 uses
// the default ceiling, n < 0 is unlimited). The bar flag is accepted for
// signature compatibility with callers that request a progress display;
// this module always uses the plain implementation.
func New(ctx context.Context, n int, bar bool) Semaphore {
	return &sema{Sem: libsem.New(ctx, n)}
}

// NewSemaphoreWithContext creates a plain Semaphore bound to ctx with n
// worker slots.
func NewSemaphoreWithContext(ctx context.Context, n int) Semaphore {
	return New(ctx, n, false)
}

type sema struct {
	libsem.Sem
}

func (s *sema) WaitAll() error {
	n := s.Weighted()

	if n <= 0 {
		return nil
	}

	for i := int64(0); i < n; i++ {
		if err := s.NewWorker(); err != nil {
			return err
		}
	}

	for i := int64(0); i < n; i++ {
		s.DeferWorker()
	}

	return nil
}
