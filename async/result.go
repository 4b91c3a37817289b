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

// Result is a once-settable holder for the outcome of an asynchronous
// computation of type T.
type Result[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// NewResult returns an unset Result.
func NewResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

// Set records the outcome. Only the first call has any effect; subsequent
// calls are silently ignored, mirroring a promise that can only settle once.
func (r *Result[T]) Set(v T, err error) {
	r.once.Do(func() {
		r.val = v
		r.err = err
		close(r.done)
	})
}

// Done is closed once Set has been called.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Try returns the current value and error along with whether Set has been
// called yet. It never blocks.
func (r *Result[T]) Try() (T, error, bool) {
	select {
	case <-r.done:
		return r.val, r.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Err returns the recorded error, or nil if the Result has not settled yet.
// Use Done or Get to block for settlement.
func (r *Result[T]) Err() error {
	_, err, _ := r.Try()
	return err
}

// Get blocks until the Result settles or ctx is cancelled, whichever comes
// first.
func (r *Result[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
