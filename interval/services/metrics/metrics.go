/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
)

type ResultType = string

var ResultValues = map[bool]ResultType{
	true:  "valid",
	false: "invalid",
}

const (
	ResultLabel = "result"
	Subsystem   = "rangeproof"

	PrometheusProvider = "prometheus"
	DisabledProvider   = "disabled"
	MemoryProvider     = "memory"
)

// NewProvider returns the provider registered under kind.
func NewProvider(kind string) (metrics.Provider, error) {
	switch kind {
	case PrometheusProvider:
		return &prometheus.Provider{}, nil
	case DisabledProvider, "":
		return &disabled.Provider{}, nil
	case MemoryProvider:
		return NewMemoryProvider(), nil
	default:
		return nil, errors.Errorf("unknown metrics provider [%s]", kind)
	}
}

// Metrics tracks proof generation and verification.
type Metrics struct {
	supportsGetters bool

	ProofsGenerated      metrics.Counter
	GenerationFailures   metrics.Counter
	ProofVerifications   metrics.Counter
	VerificationDuration metrics.Histogram
	ActiveRequests       metrics.Gauge
}

func NewMetrics(p metrics.Provider, namespace string) *Metrics {
	_, supportsGetters := p.(*Provider)
	return &Metrics{
		supportsGetters: supportsGetters,

		ProofsGenerated: p.NewCounter(metrics.CounterOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "proofs_generated",
			Help:      "Total range proofs generated",
		}),
		GenerationFailures: p.NewCounter(metrics.CounterOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "generation_failures",
			Help:      "Range proof requests rejected because of their inputs",
		}),
		ProofVerifications: p.NewCounter(metrics.CounterOpts{
			Namespace:  namespace,
			Subsystem:  Subsystem,
			Name:       "proof_verifications",
			Help:       "Range proofs verified, by outcome",
			LabelNames: []string{ResultLabel},
		}),
		VerificationDuration: p.NewHistogram(metrics.HistogramOpts{
			Namespace:  namespace,
			Subsystem:  Subsystem,
			Name:       "verification_duration",
			Help:       "Duration of range proof verifications in seconds",
			Buckets:    prom.ExponentialBuckets(0.0005, 2, 14),
			LabelNames: []string{ResultLabel},
		}),
		ActiveRequests: p.NewGauge(metrics.GaugeOpts{
			Namespace: namespace,
			Subsystem: Subsystem,
			Name:      "active_requests",
			Help:      "Currently active requests",
		}),
	}
}

func (m *Metrics) AddVerification(duration time.Duration, valid bool) {
	m.ProofVerifications.With(ResultLabel, ResultValues[valid]).Add(1)
	m.VerificationDuration.With(ResultLabel, ResultValues[valid]).Observe(duration.Seconds())
}

func (m *Metrics) IncrementRequests() {
	m.ActiveRequests.Add(1)
}

func (m *Metrics) DecrementRequests() {
	m.ActiveRequests.Add(-1)
}
