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

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

func (n *NetworkProtocol) unmarshall(p []byte) error {
	*n = ParseBytes(bytes.Trim(bytes.Trim(p, "'"), "\""))
	return nil
}

// MarshalJSON encodes the protocol as its quoted network name.
func (n NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte("\"" + n.String() + "\""), nil
}

// UnmarshalJSON parses a quoted network name. An unknown name is not an
// error: it leaves the receiver as NetworkEmpty.
func (n *NetworkProtocol) UnmarshalJSON(p []byte) error {
	return n.unmarshall(p)
}

// MarshalYAML encodes the protocol as its network name.
func (n NetworkProtocol) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// UnmarshalYAML parses a network name from a YAML scalar node.
func (n *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	return n.unmarshall([]byte(value.Value))
}

// MarshalTOML encodes the protocol as its network name.
func (n NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalTOML parses a network name from a TOML value given as a byte
// slice or a string.
func (n *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	if p, k := i.([]byte); k {
		return n.unmarshall(p)
	}

	if s, k := i.(string); k {
		return n.unmarshall([]byte(s))
	}

	return fmt.Errorf("protocol: value not in valid format")
}

// MarshalText encodes the protocol as its network name.
func (n NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText parses a network name.
func (n *NetworkProtocol) UnmarshalText(p []byte) error {
	return n.unmarshall(p)
}

// MarshalCBOR encodes the protocol as the raw bytes of its network name,
// leaving framing to the enclosing container.
func (n NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalCBOR parses the raw bytes of a network name.
func (n *NetworkProtocol) UnmarshalCBOR(p []byte) error {
	return n.unmarshall(p)
}
