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

package config

import (
	"context"
	"sync"
	"sync/atomic"

	libmap "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/nabbar/cuti/size"
)

type dispatcherComponent struct {
	mu      sync.Mutex
	opts    Options
	running atomic.Bool
	inst    Runnable
}

func (d *dispatcherComponent) Load(v *viper.Viper, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	o := DefaultOptions()
	if v != nil {
		sub := v
		if key != "" {
			sub = v.Sub(key)
		}
		if sub != nil {
			if err := sub.Unmarshal(&o, viper.DecoderConfigOption(func(c *libmap.DecoderConfig) {
				c.DecodeHook = libmap.ComposeDecodeHookFunc(
					size.ViperDecoderHook(),
					libmap.StringToTimeDurationHookFunc(),
					libmap.TextUnmarshallerHookFunc(),
				)
			})); err != nil {
				return err
			}
		}
	}

	if err := o.Validate(); err != nil {
		return err
	}

	d.opts = o
	return nil
}

func (d *dispatcherComponent) Options() Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts
}

func (d *dispatcherComponent) Start(ctx context.Context, factory func(context.Context, Options) (Runnable, error)) error {
	if d.running.Load() {
		return nil
	}

	d.mu.Lock()
	opts := d.opts
	d.mu.Unlock()

	inst, err := factory(ctx, opts)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.inst = inst
	d.mu.Unlock()
	d.running.Store(true)
	return nil
}

func (d *dispatcherComponent) Stop(ctx context.Context) error {
	if !d.running.Load() {
		return ErrNotStarted
	}

	d.mu.Lock()
	inst := d.inst
	d.inst = nil
	d.mu.Unlock()

	d.running.Store(false)
	if inst == nil {
		return nil
	}
	return inst.Shutdown(ctx)
}

func (d *dispatcherComponent) IsRunning() bool {
	return d.running.Load()
}
