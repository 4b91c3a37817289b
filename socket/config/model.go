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
	"errors"
	"net"

	libdur "github.com/nabbar/cuti/duration"
)

var (
	// ErrInvalidProtocol is returned when Network is zero or not a TCP variant.
	ErrInvalidProtocol = errors.New("invalid protocol")

	// ErrInvalidAddress is returned when Address does not resolve for the
	// configured protocol.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidTLSConfig is reserved for a TLS config rejected at validation
	// time; cuti never enables TLS itself, so this only fires if an embedder
	// sets TLS.Enabled without a certificate loader of their own.
	ErrInvalidTLSConfig = errors.New("invalid TLS config")
)

// TLS is carried for forward compatibility with embedders that terminate TLS
// themselves in front of cuti; cuti's own listeners and dialers never
// negotiate TLS.
type TLS struct {
	Enabled bool
}

func (t TLS) validate() error {
	if t.Enabled {
		return ErrInvalidTLSConfig
	}
	return nil
}

// Client describes the remote endpoint an RPC client dials.
type Client struct {
	Network NetworkProtocol
	Address string
	TLS     TLS
}

// Validate checks the protocol and address are usable with net.Dial.
func (c Client) Validate() error {
	if !c.Network.IsTCP() {
		return ErrInvalidProtocol
	}
	if err := c.TLS.validate(); err != nil {
		return err
	}
	if _, err := net.ResolveTCPAddr(c.Network.Network(), c.Address); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// Server describes a listener the dispatcher binds via add_listener.
type Server struct {
	Network NetworkProtocol
	Address string
	TLS     TLS

	// ConIdleTimeout closes a connection that completes a request but sends
	// no new one within this duration. Zero disables the idle timeout.
	ConIdleTimeout libdur.Duration
}

// Validate checks the protocol and address are usable with net.Listen.
func (s Server) Validate() error {
	if !s.Network.IsTCP() {
		return ErrInvalidProtocol
	}
	if err := s.TLS.validate(); err != nil {
		return err
	}
	if _, err := net.ResolveTCPAddr(s.Network.Network(), s.Address); err != nil {
		return ErrInvalidAddress
	}
	return nil
}
