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

// Package scheduler is the cooperative event loop every connection's
// non-blocking buffers and async subroutines run on. Each Scheduler owns a
// single background goroutine that serializes every alarm and posted
// callback belonging to it, so callbacks for the same connection never run
// concurrently with one another and never need their own locking.
//
// This is a Go-native rendering of a single-threaded readiness loop: instead
// of a hand-rolled epoll/kqueue/select backend, a Scheduler multiplexes
// time.Timer deadlines and posted callbacks (used by nbio to announce that a
// read or write has become ready) onto one goroutine per owner, giving the
// same guarantees the callback machinery it replaces would: one logical
// owner per task, hierarchical cancellation by context, and a bounded call
// stack since no callback calls another synchronously across ticks.
package scheduler

import (
	"context"
	"time"
)

// Ticket identifies a scheduled alarm or posted callback so it can be
// cancelled before it fires. NoTicket is returned when scheduling failed
// because the Scheduler has already stopped.
type Ticket int64

// NoTicket is the zero-value sentinel ticket; it is never allocated to a
// real alarm and Cancel(NoTicket) is always a no-op.
const NoTicket Ticket = 0

// Scheduler runs callbacks in submission order relative to their deadlines,
// one at a time, on a single owned goroutine. It embeds context.Context so a
// callback can observe cancellation of the scheduler that is running it, and
// so a parent Scheduler can be handed directly to code that only needs a
// context.
type Scheduler interface {
	context.Context

	// After schedules fn to run after d has elapsed, and returns a Ticket
	// that Cancel can use to prevent it firing. A zero or negative d runs fn
	// on the loop's very next turn.
	After(d time.Duration, fn func(ctx context.Context)) Ticket

	// Post schedules fn to run on the loop's next turn, after any alarms
	// already due. It is how nbio announces "the connection just became
	// readable/writable" without calling the callback from the I/O
	// goroutine itself.
	Post(fn func(ctx context.Context)) Ticket

	// Cancel prevents a previously scheduled Ticket from firing. It returns
	// false if the ticket is unknown, already fired, or already cancelled.
	Cancel(t Ticket) bool

	// Stop cancels every pending alarm and callback and terminates the
	// loop's goroutine. It does not wait for an in-flight callback to
	// return; use Done() to wait for full shutdown.
	Stop()
}

// New starts a Scheduler whose loop goroutine runs until parent is
// cancelled or Stop is called.
func New(parent context.Context) Scheduler {
	return newScheduler(parent)
}
