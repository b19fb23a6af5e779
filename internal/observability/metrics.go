// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/authd/authd/internal/auth"
)

// OutcomeOK labels a flow that completed without error.
const OutcomeOK = "ok"

// Metrics contains the authd Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AuthRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers authd metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authd_auth_requests_total",
				Help: "Total number of authentication flows by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "authd_http_request_duration_seconds",
				Help:    "HTTP request latency by method, route pattern and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(m.AuthRequestsTotal)
	reg.MustRegister(m.HTTPRequestDuration)

	return m
}

// ObserveFlow counts one flow. The outcome is "ok" or the lower-case error kind.
func (m *Metrics) ObserveFlow(flow string, err error) {
	if m == nil {
		return
	}
	m.AuthRequestsTotal.WithLabelValues(flow, Outcome(err)).Inc()
}

// ObserveHTTP records the latency of one HTTP exchange.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Outcome returns the metric label for a flow result.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	return strings.ToLower(auth.KindOf(err).String())
}
