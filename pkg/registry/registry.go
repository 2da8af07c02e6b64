// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"fmt"

	"github.com/luxfi/geth/common"
)

// PoolRegistry looks up deployed AMM pools.
type PoolRegistry interface {
	// LookupPool returns the pool for the asset pair at feeTier, and false if
	// none is deployed.
	LookupPool(ctx context.Context, assetA, assetB common.Address, feeTier uint32) (common.Address, bool, error)
}

type poolKey struct {
	token0  common.Address
	token1  common.Address
	feeTier uint32
}

func sortTokens(a, b common.Address) (common.Address, common.Address) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}

// Static is an in-memory registry. Like the V3 factory it does not care
// about token order.
type Static struct {
	pools map[poolKey]common.Address
}

func NewStatic() *Static {
	return &Static{pools: make(map[poolKey]common.Address)}
}

// Add registers pool for the pair at feeTier.
func (s *Static) Add(assetA, assetB common.Address, feeTier uint32, pool common.Address) error {
	if assetA == assetB {
		return fmt.Errorf("identical assets %s", assetA.Hex())
	}
	t0, t1 := sortTokens(assetA, assetB)
	s.pools[poolKey{t0, t1, feeTier}] = pool
	return nil
}

func (s *Static) LookupPool(_ context.Context, assetA, assetB common.Address, feeTier uint32) (common.Address, bool, error) {
	t0, t1 := sortTokens(assetA, assetB)
	pool, ok := s.pools[poolKey{t0, t1, feeTier}]
	if !ok || pool == (common.Address{}) {
		return common.Address{}, false, nil
	}
	return pool, true, nil
}
