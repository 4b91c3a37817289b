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

package async

import (
	"context"
	"sync"
)

type group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	errOnce sync.Once
	err     error
}

func newGroup(parent context.Context) *group {
	ctx, cancel := context.WithCancel(parent)
	return &group{ctx: ctx, cancel: cancel}
}

func (g *group) Context() context.Context {
	return g.ctx
}

func (g *group) Child() Group {
	return newGroup(g.ctx)
}

func (g *group) Cancel() {
	g.cancel()
}

func (g *group) Wait() error {
	g.wg.Wait()
	return g.err
}

func (g *group) fail(err error) {
	g.errOnce.Do(func() {
		g.err = err
		g.cancel()
	})
}

// Subroutine is a single spawned unit of work: a Result[T] paired with a
// Cancel method that stops just that subroutine without touching its
// siblings.
type Subroutine[T any] struct {
	*Result[T]
	cancel context.CancelFunc
}

// Cancel stops this subroutine's context. If its function is already
// running it is responsible for observing ctx.Done() to unwind promptly;
// Cancel does not forcibly interrupt it.
func (s *Subroutine[T]) Cancel() {
	s.cancel()
}

// Go spawns fn on its own goroutine, scoped as a child of g. fn observes
// g's cancellation (and the subroutine's own, narrower cancellation) through
// the context it is given. In PropagateToParent mode a non-nil error cancels
// g and becomes g's Wait() result; in HandleInParent mode the error is only
// ever visible through the returned Subroutine's Result.
func Go[T any](g Group, mode FailureMode, fn func(ctx context.Context) (T, error)) *Subroutine[T] {
	gr := g.(*group)
	ctx, cancel := context.WithCancel(gr.ctx)
	r := NewResult[T]()
	s := &Subroutine[T]{Result: r, cancel: cancel}

	gr.wg.Add(1)
	go func() {
		defer gr.wg.Done()
		defer cancel()
		defer func() {
			if p := recover(); p != nil {
				var zero T
				r.Set(zero, newPanicError(p))
			}
		}()

		v, err := fn(ctx)
		r.Set(v, err)
		if err != nil && mode == PropagateToParent {
			gr.fail(err)
		}
	}()

	return s
}

// Stitch blocks until every Waiter in ws has settled or ctx is cancelled,
// whichever comes first, and returns the first non-nil error among them in
// the order they were passed.
func Stitch(ctx context.Context, ws ...Waiter) error {
	for _, w := range ws {
		select {
		case <-w.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, w := range ws {
		if err := w.Err(); err != nil {
			return err
		}
	}
	return nil
}
