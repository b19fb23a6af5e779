// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/authd/authd/internal/auth"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "ok"},
		{name: "invalid argument", err: auth.InvalidArgument("bad"), want: "invalid_argument"},
		{name: "already exists", err: auth.AlreadyExists("dup"), want: "already_exists"},
		{name: "database", err: oops.Code(auth.KindDatabaseError.String()).Errorf("boom"), want: "database_error"},
		{name: "uncoded", err: assert.AnError, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestMetrics_ObserveFlow(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveFlow("register", nil)
	m.ObserveFlow("register", auth.AlreadyExists("dup"))
	m.ObserveFlow("register", auth.AlreadyExists("dup"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.AuthRequestsTotal.WithLabelValues("register", "ok")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.AuthRequestsTotal.WithLabelValues("register", "already_exists")), 0)
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFlow("sign_in", nil)
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	})
}

func TestNewMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
