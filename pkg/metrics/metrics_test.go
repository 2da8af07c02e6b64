// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	require := require.New(t)
	c := New()

	c.ObserveDecision("reject", "exceeds max tx")
	c.ObserveDecision("reject", "exceeds max tx")
	c.ObserveDecision("split-with-fee", "")
	c.ObserveApplied(uint256.NewInt(200))
	c.ObserveApplied(nil)

	require.InDelta(2, testutil.ToFloat64(c.Decisions().WithLabelValues("reject", "exceeds max tx")), 0)
	require.InDelta(1, testutil.ToFloat64(c.Decisions().WithLabelValues("split-with-fee", "")), 0)
	require.InDelta(200, testutil.ToFloat64(c.Fees()), 0)
	require.InDelta(2, testutil.ToFloat64(c.Transfers()), 0)

	families, err := c.Registry.Gather()
	require.NoError(err)
	require.Len(families, 3)
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.ObserveDecision("pass-through", "")
		c.ObserveApplied(uint256.NewInt(1))
	})
}
