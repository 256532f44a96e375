package rpc

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK        = "ok"
	statusRPCError  = "rpc_error"
	statusTransport = "transport_error"
)

// Metrics holds the Prometheus collectors for wallet RPC calls. A nil *Metrics records nothing.
type Metrics struct {
	callsTotal   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors. If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		callsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monero_wallet_rpc_calls_total",
				Help: "Total number of wallet RPC calls by method and status",
			},
			[]string{"method", "status"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "monero_wallet_rpc_call_duration_seconds",
				Help:    "Duration of wallet RPC calls in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) ObserveCall(method string, err error, duration time.Duration) {
	if m == nil {
		return
	}

	status := statusOK
	if err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			status = statusRPCError
		} else {
			status = statusTransport
		}
	}

	m.callsTotal.WithLabelValues(method, status).Inc()
	m.callDuration.WithLabelValues(method).Observe(duration.Seconds())
}
