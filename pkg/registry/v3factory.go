// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/accounts/abi/bind"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/ethclient"
)

// Uniswap V3 Factory ABI (minimal)
const V3FactoryABI = `[
	{"inputs":[{"internalType":"address","name":"tokenA","type":"address"},{"internalType":"address","name":"tokenB","type":"address"},{"internalType":"uint24","name":"fee","type":"uint24"}],"name":"getPool","outputs":[{"internalType":"address","name":"pool","type":"address"}],"stateMutability":"view","type":"function"}
]`

// V3Factory resolves pools through a deployed Uniswap V3 factory.
type V3Factory struct {
	address common.Address
	client  *ethclient.Client
	factory *bind.BoundContract
}

// DialV3Factory connects to rpcURL and binds the factory at address.
func DialV3Factory(rpcURL string, address common.Address) (*V3Factory, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	f, err := NewV3Factory(address, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	f.client = client
	return f, nil
}

// NewV3Factory binds the factory at address using caller for reads.
func NewV3Factory(address common.Address, caller bind.ContractCaller) (*V3Factory, error) {
	parsed, err := abi.JSON(strings.NewReader(V3FactoryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse V3Factory ABI: %w", err)
	}
	return &V3Factory{
		address: address,
		factory: bind.NewBoundContract(address, parsed, caller, nil, nil),
	}, nil
}

func (f *V3Factory) Address() common.Address {
	return f.address
}

func (f *V3Factory) LookupPool(ctx context.Context, assetA, assetB common.Address, feeTier uint32) (common.Address, bool, error) {
	var result []interface{}
	if err := f.factory.Call(&bind.CallOpts{Context: ctx}, &result, "getPool", assetA, assetB, big.NewInt(int64(feeTier))); err != nil {
		return common.Address{}, false, fmt.Errorf("getPool(%s, %s, %d): %w", assetA.Hex(), assetB.Hex(), feeTier, err)
	}
	if len(result) == 0 {
		return common.Address{}, false, fmt.Errorf("getPool returned no values")
	}
	pool, ok := result[0].(common.Address)
	if !ok {
		return common.Address{}, false, fmt.Errorf("getPool returned %T", result[0])
	}
	if pool == (common.Address{}) {
		return common.Address{}, false, nil
	}
	return pool, true, nil
}

// Close releases the RPC connection if this factory owns one.
func (f *V3Factory) Close() {
	if f.client != nil {
		f.client.Close()
	}
}
