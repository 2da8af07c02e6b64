// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	AppName     = "tokengate"
	EnvPrefix   = "TOKENGATE"
	BaseDirName = ".tokengate"

	DefaultConfigFileName = "tokengate"
	DefaultConfigFileType = "yaml"

	TokenName     = "Gate"
	TokenSymbol   = "GATE"
	TokenDecimals = 6

	// WholeSupply is the total supply in whole tokens; the ledger works in
	// base units of 10^TokenDecimals.
	WholeSupply       = 500_000_000_000
	TotalSupplyUnits  = WholeSupply * 1_000_000
	BasisPointsDenom  = 10_000
	MaxLaunchBuyFeeBp = 2_500

	// Limit floors, in basis points of total supply.
	MaxTxFloorBp     = 2
	MaxWalletFloorBp = 100

	// Blocks after activation (inclusive) during which buys are capped at
	// MaxTx / LaunchProtectionDivisor.
	LaunchProtectionBlocks  = 8
	LaunchProtectionDivisor = 5

	DefaultLaunchBuyFeeBp = 2_000
	DefaultBuyFeeBp       = 300
	DefaultSellFeeBp      = 0
	DefaultLaunchWindow   = 900 * time.Second

	RPCRequestTimeout = 30 * time.Second
)

// DefaultFeeTiers are the Uniswap V3 fee tiers probed by pool discovery.
var DefaultFeeTiers = []uint32{100, 500, 3000, 10000}

// MaxFeeTier is the largest fee tier a uint24 can hold.
const MaxFeeTier = 1<<24 - 1
