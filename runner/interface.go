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

// Package runner holds the lifecycle helpers shared by the long-running
// pieces of the module: the startStop and ticker sub-packages wrap a
// function in a Start/Stop/Restart contract, and RecoveryCaller is the
// last-resort panic sink their goroutines (and every other background
// goroutine in this module) defer.
package runner

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RecoveryCaller reports a recovered panic to stderr with the caller name,
// optional context lines and the goroutine stack. It is a no-op when rec
// is nil, so it can be deferred unconditionally:
//
//	defer runner.RecoveryCaller("cuti/logger/hookfile/system", recover())
func RecoveryCaller(caller string, rec interface{}, info ...string) {
	if rec == nil {
		return
	}

	_, _ = fmt.Fprintf(os.Stderr, "recovering panic thread on %s: %v\n", caller, rec)

	for _, i := range info {
		_, _ = fmt.Fprintf(os.Stderr, "\t%s\n", i)
	}

	_, _ = os.Stderr.Write(debug.Stack())
}
