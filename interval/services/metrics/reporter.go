/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"fmt"
	"strings"
	"time"
)

type retrievable interface {
	Count() uint64
	Avg() float64
	Min() float64
	Max() float64
}

type gettable interface {
	Get() float64
}

type Reporter interface {
	Summary() string
}

// NewReporter summarises m. Only metrics built on the memory provider can be read back.
func NewReporter(m *Metrics) Reporter {
	if m.supportsGetters {
		return &reporter{Metrics: m}
	}
	return &emptyReporter{}
}

const noValues = "No values can be retrieved. Change the provider type."

type emptyReporter struct{}

func (r *emptyReporter) Summary() string { return noValues }

type reporter struct {
	*Metrics
}

func (r *reporter) Summary() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("Proofs generated %d, rejected requests %d\n",
		int(r.ProofsGenerated.(gettable).Get()),
		int(r.GenerationFailures.(gettable).Get())))

	d := r.VerificationDuration.(retrievable)
	b.WriteString(fmt.Sprintf("Proofs verified %d, average duration %v\n",
		d.Count(), time.Duration(d.Avg()*float64(time.Second))))
	if d.Count() != 0 {
		b.WriteString(fmt.Sprintf("Fastest verification took %v, slowest %v\n",
			time.Duration(d.Min()*float64(time.Second)),
			time.Duration(d.Max()*float64(time.Second))))
	}
	b.WriteString(fmt.Sprintf("Active requests: %d\n", int(r.ActiveRequests.(gettable).Get())))
	return b.String()
}
