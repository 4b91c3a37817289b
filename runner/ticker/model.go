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

package ticker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type tick struct {
	opm sync.Mutex

	interval time.Duration
	fn       FuncTick

	running   atomic.Bool
	startedAt atomic.Int64

	cancel context.CancelFunc
	done   chan struct{}

	errm sync.Mutex
	errs []error
}

func (o *tick) Start(ctx context.Context) error {
	o.opm.Lock()
	defer o.opm.Unlock()

	o.stopLocked()
	o.clearErrs()

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	o.cancel = cancel
	o.done = done

	o.running.Store(true)
	o.startedAt.Store(time.Now().UnixNano())

	go o.run(cctx, done)

	return nil
}

func (o *tick) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer o.startedAt.Store(0)
	defer o.running.Store(false)

	t := time.NewTicker(o.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			o.fire(ctx, t)
		}
	}
}

func (o *tick) fire(ctx context.Context, t *time.Ticker) {
	defer func() {
		if r := recover(); r != nil {
			o.addErr(fmt.Errorf("recovered panic in tick function: %v", r))
		}
	}()

	if o.fn == nil {
		return
	}

	if err := o.fn(ctx, t); err != nil {
		o.addErr(err)
	}
}

func (o *tick) Stop(ctx context.Context) error {
	o.opm.Lock()
	defer o.opm.Unlock()

	o.stopLocked()
	return nil
}

func (o *tick) stopLocked() {
	if !o.running.Load() {
		return
	}

	if o.cancel != nil {
		o.cancel()
	}
	if o.done != nil {
		<-o.done
	}

	o.cancel = nil
	o.done = nil
}

func (o *tick) Restart(ctx context.Context) error {
	_ = o.Stop(ctx)
	return o.Start(ctx)
}

func (o *tick) IsRunning() bool {
	return o.running.Load()
}

func (o *tick) Uptime() time.Duration {
	if !o.running.Load() {
		return 0
	}

	n := o.startedAt.Load()
	if n == 0 {
		return 0
	}

	return time.Since(time.Unix(0, n))
}

func (o *tick) addErr(err error) {
	o.errm.Lock()
	defer o.errm.Unlock()
	o.errs = append(o.errs, err)
}

func (o *tick) clearErrs() {
	o.errm.Lock()
	defer o.errm.Unlock()
	o.errs = nil
}

func (o *tick) ErrorsLast() error {
	o.errm.Lock()
	defer o.errm.Unlock()

	if len(o.errs) == 0 {
		return nil
	}
	return o.errs[len(o.errs)-1]
}

func (o *tick) ErrorsList() []error {
	o.errm.Lock()
	defer o.errm.Unlock()

	out := make([]error, len(o.errs))
	copy(out, o.errs)
	return out
}
