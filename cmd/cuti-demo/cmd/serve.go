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

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	dspcfg "github.com/nabbar/cuti/config"
	"github.com/nabbar/cuti/dispatcher"
	"github.com/nabbar/cuti/rpc"
	sckcfg "github.com/nabbar/cuti/socket/config"
	"github.com/nabbar/cuti/wire"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bind a listener and serve the demo MethodMap until interrupted",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:7264", "address to bind the RPC listener on")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	dc := dspcfg.New()
	if err := dc.Load(vpr, "dispatcher"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var disp dispatcher.Dispatcher
	err := dc.Start(ctx, func(ctx context.Context, opts dspcfg.Options) (dspcfg.Runnable, error) {
		disp = dispatcher.New(opts, nil)

		cfg := sckcfg.Server{Network: sckcfg.NetworkTCP, Address: listenAddr}
		addr, err := disp.AddListener(ctx, cfg, demoMethods())
		if err != nil {
			return nil, err
		}
		cmd.Printf("cuti-demo: listening on %s\n", addr.String())
		return disp, nil
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	cmd.Println("cuti-demo: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return dc.Stop(shutdownCtx)
}

// demoMethods is the demo RPC surface: "ping" takes no arguments and returns
// a literal greeting, "add" sums two signed integers, and "echo" returns
// whatever string it is given.
func demoMethods() rpc.MethodMap {
	return rpc.MethodMap{
		"ping": func(ctx context.Context, in *wire.Reader, out *wire.Writer) error {
			return out.String("pong")
		},
		"add": func(ctx context.Context, in *wire.Reader, out *wire.Writer) error {
			a, err := in.Int(64)
			if err != nil {
				return err
			}
			b, err := in.Int(64)
			if err != nil {
				return err
			}
			return out.Int(a + b)
		},
		"echo": func(ctx context.Context, in *wire.Reader, out *wire.Writer) error {
			s, err := in.String()
			if err != nil {
				return err
			}
			return out.String(s)
		},
	}
}
