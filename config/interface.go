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

// Package config binds dispatcher options from a *viper.Viper instance
// (bufsize, connection/concurrency bounds, throughput policing) and drives
// a dispatcher.Dispatcher through a Start/Stop/IsRunning component
// lifecycle.
package config

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"

	libdur "github.com/nabbar/cuti/duration"
	"github.com/nabbar/cuti/nbio"
	"github.com/nabbar/cuti/size"
)

// ErrNotStarted is returned by Stop when the component was never started.
var ErrNotStarted = errors.New("config: dispatcher component not started")

// Options are the Dispatcher component's bindable settings.
type Options struct {
	BufSize               size.Size      `mapstructure:"bufsize"`
	MaxConnections        int            `mapstructure:"max_connections"`
	MaxConcurrentRequests int            `mapstructure:"max_concurrent_requests"`
	Throughput            ThroughputOpts `mapstructure:"throughput"`
}

// ThroughputOpts mirrors nbio.ThroughputPolicy in viper-bindable form.
type ThroughputOpts struct {
	MinBytesPerTick int           `mapstructure:"min_bytes_per_tick"`
	LowTicksLimit   int           `mapstructure:"low_ticks_limit"`
	TickLength      libdur.Duration `mapstructure:"tick_length"`
}

// Policy converts ThroughputOpts into the nbio policy shape.
func (t ThroughputOpts) Policy() nbio.ThroughputPolicy {
	return nbio.ThroughputPolicy{
		MinBytesPerTick: t.MinBytesPerTick,
		LowTicksLimit:   t.LowTicksLimit,
		TickLength:      time.Duration(t.TickLength),
	}
}

// DefaultOptions returns the options a Dispatcher component falls back to
// when a key is absent from the bound viper instance.
func DefaultOptions() Options {
	return Options{
		BufSize:               64 * size.SizeKilo,
		MaxConnections:        1024,
		MaxConcurrentRequests: 64,
		Throughput: ThroughputOpts{
			MinBytesPerTick: 0,
			LowTicksLimit:   0,
			TickLength:      libdur.Duration(time.Second),
		},
	}
}

// Validate checks the options are usable to construct a dispatcher.
func (o Options) Validate() error {
	if o.BufSize < size.SizeUnit {
		return errors.New("config: bufsize must be at least 1 byte")
	}
	if o.MaxConnections <= 0 {
		return errors.New("config: max_connections must be positive")
	}
	if o.MaxConcurrentRequests <= 0 {
		return errors.New("config: max_concurrent_requests must be positive")
	}
	return nil
}

// Dispatcher is the bindable, start/stoppable configuration component.
type Dispatcher interface {
	// Load unmarshals Options from v under key (e.g. "dispatcher"),
	// applying DefaultOptions for anything absent.
	Load(v *viper.Viper, key string) error

	// Options returns the currently loaded options.
	Options() Options

	// Start calls factory with the loaded options to obtain a runnable, and
	// starts it. Start is idempotent while already running.
	Start(ctx context.Context, factory func(context.Context, Options) (Runnable, error)) error

	// Stop stops the running instance, if any.
	Stop(ctx context.Context) error

	// IsRunning reports whether Start has produced a still-running instance.
	IsRunning() bool
}

// Runnable is the minimal shape config.Dispatcher drives: something with a
// graceful Shutdown. dispatcher.Dispatcher satisfies this.
type Runnable interface {
	Shutdown(ctx context.Context) error
}

// New returns a Dispatcher component with DefaultOptions loaded.
func New() Dispatcher {
	return &dispatcherComponent{opts: DefaultOptions()}
}
