// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/crypto"
)

// Accounts is a fixed cast of named accounts used across tests.
type Accounts struct {
	Owner    common.Address
	Self     common.Address
	Treasury common.Address
	Pair     common.Address
	Router   common.Address
	Alice    common.Address
	Bob      common.Address
	Counter  common.Address
}

func NewAccounts() Accounts {
	return Accounts{
		Owner:    common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		Self:     common.HexToAddress("0x00000000000000000000000000000000000000a2"),
		Treasury: common.HexToAddress("0x00000000000000000000000000000000000000a3"),
		Pair:     common.HexToAddress("0x00000000000000000000000000000000000000b1"),
		Router:   common.HexToAddress("0x00000000000000000000000000000000000000b2"),
		Alice:    common.HexToAddress("0x00000000000000000000000000000000000000c1"),
		Bob:      common.HexToAddress("0x00000000000000000000000000000000000000c2"),
		Counter:  common.HexToAddress("0x00000000000000000000000000000000000000d1"),
	}
}

func GenerateEthAddrs(count int) ([]common.Address, error) {
	addrs := make([]common.Address, count)
	for i := 0; i < count; i++ {
		pk, err := crypto.GenerateKey()
		if err != nil {
			return nil, err
		}
		addrs[i] = common.Address(crypto.PubkeyToAddress(pk.PublicKey))
	}
	return addrs, nil
}

// Units converts whole tokens to base units at 6 decimals.
func Units(whole uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(whole), uint256.NewInt(1_000_000))
}
