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

package protocol

// String returns the lowercase network name for this protocol, or the
// empty string when the value is NetworkEmpty or out of range.
func (n NetworkProtocol) String() string {
	switch n {
	case NetworkUnix:
		return "unix"
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	case NetworkUnixGram:
		return "unixgram"
	default:
		return ""
	}
}

// Code returns the short identifier of this protocol, usable as a map key
// or a config value. It is the same string as String().
func (n NetworkProtocol) Code() string {
	return n.String()
}

// Network returns the network name accepted by net.Dial and net.Listen
// for this protocol, or "" when unset.
func (n NetworkProtocol) Network() string {
	return n.String()
}

// IsTCP reports whether n is any of the TCP variants.
func (n NetworkProtocol) IsTCP() bool {
	switch n {
	case NetworkTCP, NetworkTCP4, NetworkTCP6:
		return true
	default:
		return false
	}
}

func (n NetworkProtocol) isValid() bool {
	return n > NetworkEmpty && n <= NetworkUnixGram
}

// Int returns the numeric value of this protocol, or 0 when the value is
// not a defined protocol.
func (n NetworkProtocol) Int() int {
	if n.isValid() {
		return int(n)
	}

	return 0
}

// Int64 returns the numeric value of this protocol as an int64.
func (n NetworkProtocol) Int64() int64 {
	return int64(n.Int())
}

// Uint returns the numeric value of this protocol as a uint.
func (n NetworkProtocol) Uint() uint {
	return uint(n.Int())
}

// Uint64 returns the numeric value of this protocol as a uint64.
func (n NetworkProtocol) Uint64() uint64 {
	return uint64(n.Int())
}
