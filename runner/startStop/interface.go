/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop wraps a pair of start/stop functions into a single
// goroutine-safe lifecycle object under Start/Stop/Restart control. It is
// exported general-purpose plumbing for embedders that need their own
// start/stop-able loop without reimplementing one.
package startStop

import (
	"context"
	"time"
)

// FuncStart runs until ctx is done, or returns early on its own error.
type FuncStart func(ctx context.Context) error

// FuncStop performs any teardown needed after the start function returns.
type FuncStop func(ctx context.Context) error

// StartStop runs one instance of a start function at a time.
type StartStop interface {
	// Start launches the start function in a new goroutine, stopping any
	// previous running instance first. It returns once the new instance has
	// been launched, not once it has finished.
	Start(ctx context.Context) error

	// Stop cancels the running instance and waits for its stop function to
	// return. Calling Stop when not running is a no-op.
	Stop(ctx context.Context) error

	// Restart stops then starts again.
	Restart(ctx context.Context) error

	// IsRunning reports whether a start function instance is currently active.
	IsRunning() bool

	// Uptime reports how long the current instance has been running, or zero
	// when not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recently captured error, or nil.
	ErrorsLast() error

	// ErrorsList returns all errors captured since the last Start.
	ErrorsList() []error
}

// New wraps start and stop into a StartStop. Either may be nil: calling Start
// or Stop with a nil function captures an "invalid start/stop function" error
// instead of panicking.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{
		fctStart: start,
		fctStop:  stop,
	}
}
