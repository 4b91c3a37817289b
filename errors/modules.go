/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Each package of this module that registers coded error messages owns a
// block of CodeError values starting at its MinPkg constant. Blocks are
// spaced so a package can grow without colliding with its neighbours;
// embedders should start their own codes at MinAvailable.
const (
	MinPkgAtomic      = 100
	MinPkgCache       = 200
	MinPkgClientCache = 300
	MinPkgConfig      = 400
	MinPkgDispatcher  = 500
	MinPkgDuration    = 600
	MinPkgEncoding    = 700
	MinPkgIOUtils     = 800
	MinPkgLogger      = 900
	MinPkgNetwork     = 1000
	MinPkgNbio        = 1100
	MinPkgRunner      = 1200
	MinPkgRPC         = 1300
	MinPkgScheduler   = 1400
	MinPkgSemaphore   = 1500
	MinPkgSize        = 1600
	MinPkgSocket      = 1700
	MinPkgWire        = 1800

	MinAvailable = 4000
)
