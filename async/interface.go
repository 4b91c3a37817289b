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

// Package async is a continuation-passing combinator framework built on
// goroutines, channels and context.Context rather than a hand-rolled
// callback/stack-marker machine. A Group is a cancellation scope: cancelling
// or destroying it cancels every Subroutine spawned on it and every child
// Group derived from it, giving hierarchical cancellation by destruction.
// Each Subroutine owns a Result, a once-settable holder for its eventual
// value or error, and Stitch composes several Subroutines (or anything
// implementing Waiter) into a single join point.
package async

import "context"

// FailureMode controls what a Subroutine does with the group it runs on
// when its function returns an error.
type FailureMode int

const (
	// PropagateToParent cancels the owning Group's context the first time
	// any subroutine running in that mode fails, and records the error as
	// the Group's Wait() result. This is the "propagate" failure mode.
	PropagateToParent FailureMode = iota

	// HandleInParent leaves the error captured only in the Subroutine's own
	// Result; the Group keeps running unaffected. This is the
	// "handle in parent" failure mode, used when a caller wants to inspect
	// the outcome itself instead of tearing down sibling work.
	HandleInParent
)

// Waiter is anything Stitch can join on: a single point of completion and
// an error recorded once that completion happens.
type Waiter interface {
	Done() <-chan struct{}
	Err() error
}

// Group is a hierarchical cancellation scope for subroutines spawned with Go.
type Group interface {
	// Context is the scope's context; cancelling it (directly, via the
	// parent, or via Cancel) stops every subroutine and child group
	// derived from this Group.
	Context() context.Context

	// Child derives a new Group whose cancellation is tied to this one:
	// destroying the parent (Cancel, or the parent's own parent being
	// cancelled) cancels the child too, but cancelling the child never
	// affects the parent.
	Child() Group

	// Cancel destroys the scope: it cancels every subroutine and child
	// group transitively spawned from it.
	Cancel()

	// Wait blocks until every subroutine spawned on this Group (not its
	// children) has finished, then returns the first error recorded by a
	// PropagateToParent subroutine, if any.
	Wait() error
}

// NewGroup creates a root Group whose context derives from parent.
func NewGroup(parent context.Context) Group {
	return newGroup(parent)
}
