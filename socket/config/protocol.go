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

// Package config describes and validates the endpoints a TCP acceptor or
// client dials. The address-family tag itself lives in network/protocol;
// this package re-exports the names socket code uses so a caller building
// a Client or Server config does not need a second import.
package config

import (
	libptc "github.com/nabbar/cuti/network/protocol"
)

// NetworkProtocol tags the address family and transport of an endpoint.
type NetworkProtocol = libptc.NetworkProtocol

const (
	NetworkEmpty = libptc.NetworkEmpty
	NetworkTCP   = libptc.NetworkTCP
	NetworkTCP4  = libptc.NetworkTCP4
	NetworkTCP6  = libptc.NetworkTCP6
)
