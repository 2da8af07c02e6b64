// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/mock"
)

// PoolRegistry is a mock implementation of registry.PoolRegistry
type PoolRegistry struct {
	mock.Mock
}

func (m *PoolRegistry) LookupPool(ctx context.Context, assetA, assetB common.Address, feeTier uint32) (common.Address, bool, error) {
	args := m.Called(ctx, assetA, assetB, feeTier)
	return args.Get(0).(common.Address), args.Bool(1), args.Error(2)
}
