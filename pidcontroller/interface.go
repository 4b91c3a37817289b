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

// Package pidcontroller implements a proportional-integral-derivative
// step generator. Given the three gain rates, a controller produces the
// intermediate values between two bounds, taking large steps while far
// from the target and smaller ones while closing in. The duration package
// uses it to build retry/backoff ranges between a min and max delay.
package pidcontroller

import (
	"context"
)

// Controller generates the intermediate values between two bounds using
// the configured PID gains.
type Controller interface {
	// RangeCtx returns the ascending values from 'from' (inclusive) to
	// 'to' (exclusive), stopping early if ctx is done. The caller is
	// expected to append the upper bound itself if it needs it.
	RangeCtx(ctx context.Context, from, to float64) []float64

	// Range is RangeCtx with a background context.
	Range(from, to float64) []float64
}

// New returns a Controller with the given proportional, integral and
// derivative gain rates. Non-positive gains are allowed; the controller
// enforces a minimum forward step of 1 so a range always terminates.
func New(rateP, rateI, rateD float64) Controller {
	return &ctl{
		p: rateP,
		i: rateI,
		d: rateD,
	}
}

type ctl struct {
	p float64
	i float64
	d float64
}

func (c *ctl) Range(from, to float64) []float64 {
	return c.RangeCtx(context.Background(), from, to)
}

func (c *ctl) RangeCtx(ctx context.Context, from, to float64) []float64 {
	var (
		res      = make([]float64, 0)
		integral float64
		previous float64
	)

	if from >= to {
		return res
	}

	for cur := from; cur < to; {
		select {
		case <-ctx.Done():
			return res
		default:
		}

		err := to - cur
		integral += err

		step := c.p*err + c.i*integral + c.d*(err-previous)
		previous = err

		if step < 1 {
			step = 1
		}

		res = append(res, cur)
		cur += step
	}

	return res
}
