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

// Package protocol defines the NetworkProtocol tag shared by every
// component that dials or listens on a network: the socket transport, the
// syslog hook, and any configuration struct that needs to carry an address
// family next to an address string. The type serializes to its lowercase
// network name (the same string net.Dial accepts) in JSON, YAML, TOML,
// CBOR and plain text, and parses back case-insensitively.
package protocol

import (
	"bytes"
	"strings"
)

// NetworkProtocol tags the address family and transport of a network
// endpoint. The zero value NetworkEmpty means "unset".
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// Parse returns the NetworkProtocol matching the given string, ignoring
// case, surrounding whitespace and double or backtick quoting. Unknown
// input returns NetworkEmpty.
func Parse(s string) NetworkProtocol {
	s = strings.Trim(strings.TrimSpace(s), "\"`")

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

// ParseBytes is Parse for a raw byte slice.
func ParseBytes(p []byte) NetworkProtocol {
	return Parse(string(bytes.TrimSpace(p)))
}

// ParseInt64 returns the NetworkProtocol whose numeric value is v, or
// NetworkEmpty if v is out of range.
func ParseInt64(v int64) NetworkProtocol {
	if v > int64(NetworkEmpty) && v <= int64(NetworkUnixGram) {
		return NetworkProtocol(v)
	}

	return NetworkEmpty
}
