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

// Package rpc frames one request/reply exchange over a wire.Reader/
// wire.Writer pair: an identifier, that method's argument list, a
// terminating newline; and a reply that is either the method's result list
// or an exception frame `$ kind "message"`.
package rpc

import (
	"context"
	"errors"

	"github.com/nabbar/cuti/async"
	"github.com/nabbar/cuti/wire"
)

// exceptionMarker is the literal identifier that opens an exception frame
// in place of a normal result list.
const exceptionMarker = '$'

var (
	// ErrUnknownMethod is the exception kind written when a request names a
	// method the server's MethodMap does not contain.
	ErrUnknownMethod = "unknown_method"

	// ErrConnectionBroken is returned by Call when the connection's framing
	// can no longer be trusted and must not be reused.
	ErrConnectionBroken = errors.New("rpc: connection framing broken, must not be reused")
)

// Exception is the error a Method returns to have the handler write an
// exception frame instead of a success reply. Kind must already be a valid
// wire identifier.
type Exception struct {
	Kind    string
	Message string
}

func (e *Exception) Error() string {
	return e.Kind + ": " + e.Message
}

// Method implements one RPC method's server-side behavior: read your own
// arguments from in, do the work, and write your own result list to out.
// Returning a non-nil error (an *Exception or any other error, the latter
// reported under the "internal" kind) causes the handler to write an
// exception frame instead; Method must not write anything to out once it
// intends to return an error. A Method that panics is treated as having
// returned an error under the "internal" kind.
type Method func(ctx context.Context, in *wire.Reader, out *wire.Writer) error

// MethodMap binds method names to their server-side implementations.
type MethodMap map[string]Method

// HandleRequest runs one request/reply cycle: it reads the method
// identifier from in, dispatches to methods, writes the reply (success or
// exception), and writes the terminating newline. It returns a non-nil
// error only when the connection's framing itself is no longer trustworthy
// (a read/write failure, or a malformed identifier) and the connection must
// be closed rather than reused for a further request.
func HandleRequest(ctx context.Context, methods MethodMap, in *wire.Reader, out *wire.Writer) error {
	return HandleRequestHooked(ctx, methods, in, out, nil)
}

// HandleRequestHooked behaves exactly like HandleRequest, additionally
// invoking onException (if non-nil) with the exception's kind whenever a
// reply ends up being an exception frame instead of a success reply. It
// exists so an embedder (e.g. a dispatcher counting exceptions per kind for
// metrics) can observe outcomes without parsing its own wire output back.
func HandleRequestHooked(ctx context.Context, methods MethodMap, in *wire.Reader, out *wire.Writer, onException func(kind string)) error {
	name, err := in.Ident()
	if err != nil {
		return err
	}

	fn, ok := methods[name]
	if !ok {
		if err := in.SkipToEndOfMessage(); err != nil {
			return err
		}
		if onException != nil {
			onException(ErrUnknownMethod)
		}
		return writeException(out, ErrUnknownMethod, "no such method: "+name)
	}

	// The method runs as its own subroutine in HandleInParent mode: its
	// failure settles only the subroutine's Result, and this handler (the
	// parent) translates it into an exception frame instead of letting it
	// tear the connection scope down. A panicking method settles the same
	// way and so also answers with an exception frame, under the "internal"
	// kind, rather than killing the worker.
	grp := async.NewGroup(ctx)
	defer grp.Cancel()

	sub := async.Go(grp, async.HandleInParent, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c, in, out)
	})

	if _, err := sub.Get(grp.Context()); err != nil {
		// Scope cancelled while the method was still running: the method
		// goroutine may still own out, and the connection is being torn
		// down anyway, so report the error instead of racing a frame out.
		if c := grp.Context(); c.Err() != nil && errors.Is(err, c.Err()) {
			return err
		}

		var exc *Exception
		kind := "internal"
		msg := err.Error()
		if errors.As(err, &exc) {
			kind = exc.Kind
			msg = exc.Message
		}
		if onException != nil {
			onException(kind)
		}
		return writeException(out, kind, msg)
	}

	return out.EndMessage()
}

func writeException(out *wire.Writer, kind, msg string) error {
	if err := out.Marker(exceptionMarker); err != nil {
		return err
	}
	if err := out.Ident(kind); err != nil {
		return err
	}
	if err := out.String(msg); err != nil {
		return err
	}
	return out.EndMessage()
}

// ReadReply reads one reply frame. If the frame is a success reply,
// decode is invoked to read the result list and ReadReply returns its
// error, if any. If the frame is an exception, ReadReply returns it as an
// *Exception without invoking decode.
func ReadReply(in *wire.Reader, decode func(in *wire.Reader) error) error {
	isExc, err := in.TryMarker(exceptionMarker)
	if err != nil {
		return err
	}
	if isExc {
		kind, err := in.Ident()
		if err != nil {
			return err
		}
		msg, err := in.String()
		if err != nil {
			return err
		}
		if err := in.EndMessage(); err != nil {
			return err
		}
		return &Exception{Kind: kind, Message: msg}
	}

	if err := decode(in); err != nil {
		return err
	}
	return in.EndMessage()
}

// WriteRequest writes a request frame: the method identifier followed by
// its arguments written by encode.
func WriteRequest(out *wire.Writer, method string, encode func(out *wire.Writer) error) error {
	if err := out.Ident(method); err != nil {
		return err
	}
	if err := encode(out); err != nil {
		return err
	}
	return out.EndMessage()
}
