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

// Package wire implements cuti's text-framed, whitespace-separated wire
// serialization format: the same format used for every RPC request and
// reply. A token is a maximal non-whitespace run except where a form is
// self-delimiting (strings, byte vectors). Tab, carriage return and space
// separate tokens; newline is never skipped by a value reader and serves
// only as the end-of-message marker.
//
// Byte vectors are written through the hexa Coder so the same hex alphabet
// used elsewhere in the module backs the wire format's compact blob form.
package wire

import "errors"

var (
	// ErrUnexpectedEOM is returned when a value reader reaches the
	// end-of-message newline before a required value.
	ErrUnexpectedEOM = errors.New("wire: unexpected end of message")

	// ErrSyntax is returned for any token that does not match the
	// grammar expected at the reader's current position.
	ErrSyntax = errors.New("wire: syntax error")

	// ErrOverflow is returned when a decoded integer does not fit the
	// requested bit width.
	ErrOverflow = errors.New("wire: integer overflow")

	// ErrOptionalArity is returned when an optional's bracketed region
	// holds more than one value.
	ErrOptionalArity = errors.New("wire: optional holds more than one value")
)
