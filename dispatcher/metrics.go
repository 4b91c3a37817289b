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

package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics are the Prometheus collectors a Dispatcher exposes. Each
// Dispatcher instance registers its own collectors against a private
// registry, so two Dispatchers in the same process never collide on metric
// names and an embedder chooses whether/how to expose them.
type metrics struct {
	registry        *prometheus.Registry
	openConnections prometheus.Gauge
	inFlight        prometheus.Gauge
	exceptions      *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		openConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cuti_dispatcher_open_connections",
			Help: "Number of currently open connections across all listeners.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cuti_dispatcher_requests_in_flight",
			Help: "Number of RPC requests currently executing.",
		}),
		exceptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cuti_dispatcher_exceptions_total",
			Help: "Number of RPC exception replies sent, by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(m.openConnections, m.inFlight, m.exceptions)
	return m
}

// Registry returns the Dispatcher's private Prometheus registry, so an
// embedder can expose it (e.g. via promhttp.HandlerFor) alongside its own
// metrics.
func (m *metrics) Registry() *prometheus.Registry {
	return m.registry
}
