// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tokengate"

// Collector counts policy decisions. A nil *Collector is valid and records
// nothing.
type Collector struct {
	Registry *prometheus.Registry

	decisions *prometheus.CounterVec
	fees      prometheus.Counter
	transfers prometheus.Counter
}

func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "policy",
				Name:      "decisions_total",
				Help:      "Transfer decisions by outcome and reason.",
			},
			[]string{"kind", "reason"},
		),
		fees: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "policy",
				Name:      "fee_units_total",
				Help:      "Base units diverted to the fee recipient.",
			},
		),
		transfers: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "transfers_applied_total",
				Help:      "Transfers applied to the ledger.",
			},
		),
	}
	c.Registry.MustRegister(c.decisions, c.fees, c.transfers)
	return c
}

// ObserveDecision counts a decision. reason is empty unless it was a reject.
func (c *Collector) ObserveDecision(kind, reason string) {
	if c == nil {
		return
	}
	c.decisions.WithLabelValues(kind, reason).Inc()
}

// ObserveApplied counts an applied transfer and the fee it paid.
func (c *Collector) ObserveApplied(fee *uint256.Int) {
	if c == nil {
		return
	}
	c.transfers.Inc()
	if fee != nil && !fee.IsZero() {
		f, _ := new(big.Float).SetInt(fee.ToBig()).Float64()
		c.fees.Add(f)
	}
}

func (c *Collector) Decisions() *prometheus.CounterVec {
	return c.decisions
}

func (c *Collector) Fees() prometheus.Counter {
	return c.fees
}

func (c *Collector) Transfers() prometheus.Counter {
	return c.transfers
}
