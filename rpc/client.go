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

package rpc

import "github.com/nabbar/cuti/wire"

// Call writes one request frame (method plus encodeArgs) and reads back one
// reply frame, decoding a success reply with decodeResults or returning an
// *Exception for an exception frame. It is the pure wire-level half of
// rpc_client.call; pooling the underlying connection and deciding whether a
// failure should invalidate cached connections to the same endpoint is the
// caller's responsibility (see clientcache.Client).
func Call(out *wire.Writer, in *wire.Reader, method string, encodeArgs func(*wire.Writer) error, decodeResults func(*wire.Reader) error) error {
	if err := WriteRequest(out, method, encodeArgs); err != nil {
		return err
	}
	return ReadReply(in, decodeResults)
}
