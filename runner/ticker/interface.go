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

// Package ticker runs a function on a fixed interval under Start/Stop/Restart
// control. It is exported general-purpose plumbing for embedders that need
// periodic work (polling, flushing, health checks) without owning their own
// timer goroutine.
package ticker

import (
	"context"
	"time"
)

// defaultDuration is substituted whenever New is given a non-positive or
// sub-millisecond interval.
const defaultDuration = 30 * time.Second

// FuncTick is invoked on every tick. Its error is recorded, not fatal: the
// ticker keeps running regardless of what FuncTick returns.
type FuncTick func(ctx context.Context, t *time.Ticker) error

// Ticker runs FuncTick on a fixed interval.
type Ticker interface {
	// Start launches the ticker loop, stopping any previous run first.
	Start(ctx context.Context) error

	// Stop halts the loop and waits for it to exit.
	Stop(ctx context.Context) error

	// Restart stops then starts again.
	Restart(ctx context.Context) error

	// IsRunning reports whether the loop is currently active.
	IsRunning() bool

	// Uptime reports how long the current run has lasted, zero when stopped.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error returned by FuncTick, or nil.
	ErrorsLast() error

	// ErrorsList returns every error collected since the last Start.
	ErrorsList() []error
}

// New creates a Ticker that invokes fn every d. A non-positive or
// sub-millisecond d is replaced with defaultDuration. A nil fn is tolerated;
// it is treated as a no-op tick.
func New(d time.Duration, fn FuncTick) Ticker {
	if d <= 0 || d < time.Millisecond {
		d = defaultDuration
	}

	return &tick{
		interval: d,
		fn:       fn,
	}
}
