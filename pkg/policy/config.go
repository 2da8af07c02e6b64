// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
)

// BlockContext is the host-supplied block height and unix timestamp a
// request executes under.
type BlockContext struct {
	Height uint64
	Time   uint64
}

// Params are the construction-time settings of a Config.
type Params struct {
	TotalSupply  *uint256.Int
	Owner        common.Address
	Self         common.Address
	FeeRecipient common.Address

	// BuyFeeBp is the long-term buy fee. It cannot change after construction.
	BuyFeeBp       uint64
	LaunchBuyFeeBp uint64
	LaunchWindow   time.Duration
	Rounding       RoundingMode
}

// Config is the mutable state the policy engine reads. Fields are only
// reachable through the typed mutators below.
type Config struct {
	totalSupply  *uint256.Int
	owner        common.Address
	self         common.Address
	feeRecipient common.Address

	feesEnabled bool
	antiSnipe   bool

	maxTx     *uint256.Int
	maxWallet *uint256.Int

	pairs   map[common.Address]bool
	routers map[common.Address]bool
	lastBuy map[common.Address]uint64

	tradingActive bool
	startHeight   uint64
	startTime     uint64

	buyFeeBp       uint64
	launchBuyFeeBp uint64
	launchWindow   uint64
	rounding       RoundingMode
}

// NewConfig builds a config with fees and anti-snipe enabled and both
// limits at their floors.
func NewConfig(p Params) (*Config, error) {
	if p.TotalSupply == nil || p.TotalSupply.IsZero() {
		return nil, fmt.Errorf("%w: total supply must be positive", constants.ErrInvalidArgument)
	}
	if p.Owner == (common.Address{}) {
		return nil, fmt.Errorf("%w: owner is the zero address", constants.ErrInvalidArgument)
	}
	if p.FeeRecipient == (common.Address{}) {
		p.FeeRecipient = p.Owner
	}
	if p.BuyFeeBp > constants.MaxLaunchBuyFeeBp {
		return nil, fmt.Errorf("%w: buy fee %d bp above %d bp", constants.ErrInvalidArgument, p.BuyFeeBp, constants.MaxLaunchBuyFeeBp)
	}
	if p.LaunchBuyFeeBp > constants.MaxLaunchBuyFeeBp {
		return nil, fmt.Errorf("%w: launch buy fee %d bp above %d bp", constants.ErrInvalidArgument, p.LaunchBuyFeeBp, constants.MaxLaunchBuyFeeBp)
	}
	if p.LaunchWindow < 0 {
		return nil, fmt.Errorf("%w: negative launch window", constants.ErrInvalidArgument)
	}
	c := &Config{
		totalSupply:    p.TotalSupply.Clone(),
		owner:          p.Owner,
		self:           p.Self,
		feeRecipient:   p.FeeRecipient,
		feesEnabled:    true,
		antiSnipe:      true,
		pairs:          make(map[common.Address]bool),
		routers:        make(map[common.Address]bool),
		lastBuy:        make(map[common.Address]uint64),
		buyFeeBp:       p.BuyFeeBp,
		launchBuyFeeBp: p.LaunchBuyFeeBp,
		launchWindow:   uint64(p.LaunchWindow / time.Second),
		rounding:       p.Rounding,
	}
	c.maxTx = c.MaxTxFloor()
	c.maxWallet = c.MaxWalletFloor()
	return c, nil
}

func bpOf(total *uint256.Int, bp uint64) *uint256.Int {
	v := new(uint256.Int).Mul(total, uint256.NewInt(bp))
	return v.Div(v, uint256.NewInt(constants.BasisPointsDenom))
}

func (c *Config) TotalSupply() *uint256.Int { return c.totalSupply.Clone() }

// MaxTxFloor is 0.02% of total supply.
func (c *Config) MaxTxFloor() *uint256.Int { return bpOf(c.totalSupply, constants.MaxTxFloorBp) }

// MaxWalletFloor is 1% of total supply.
func (c *Config) MaxWalletFloor() *uint256.Int { return bpOf(c.totalSupply, constants.MaxWalletFloorBp) }

func (c *Config) Owner() common.Address        { return c.owner }
func (c *Config) Self() common.Address         { return c.self }
func (c *Config) FeeRecipient() common.Address { return c.feeRecipient }
func (c *Config) FeesEnabled() bool            { return c.feesEnabled }
func (c *Config) AntiSnipe() bool              { return c.antiSnipe }
func (c *Config) MaxTx() *uint256.Int          { return c.maxTx.Clone() }
func (c *Config) MaxWallet() *uint256.Int      { return c.maxWallet.Clone() }
func (c *Config) IsPair(a common.Address) bool { return c.pairs[a] }
func (c *Config) IsRouter(a common.Address) bool {
	return c.routers[a]
}
func (c *Config) TradingActive() bool    { return c.tradingActive }
func (c *Config) StartHeight() uint64    { return c.startHeight }
func (c *Config) StartTime() uint64      { return c.startTime }
func (c *Config) BuyFeeBp() uint64       { return c.buyFeeBp }
func (c *Config) SellFeeBp() uint64      { return constants.DefaultSellFeeBp }
func (c *Config) LaunchBuyFeeBp() uint64 { return c.launchBuyFeeBp }
func (c *Config) Rounding() RoundingMode { return c.rounding }

func (c *Config) LaunchWindow() time.Duration {
	return time.Duration(c.launchWindow) * time.Second
}

// LastBuy reports the height of the last recorded buy for a.
func (c *Config) LastBuy(a common.Address) (uint64, bool) {
	h, ok := c.lastBuy[a]
	return h, ok
}

// IsExempt reports whether a bypasses the standard policy: the owner, the
// token's own account, or the fee recipient.
func (c *Config) IsExempt(a common.Address) bool {
	return a == c.owner || a == c.self || a == c.feeRecipient
}

// Activate opens trading at ctx. It can only happen once.
func (c *Config) Activate(ctx BlockContext) error {
	if c.tradingActive {
		return constants.ErrAlreadyActive
	}
	c.tradingActive = true
	c.startHeight = ctx.Height
	c.startTime = ctx.Time
	return nil
}

// TransferOwnership hands the owner role from caller to newOwner and returns
// the previous owner. Only the current owner may call it, and the zero
// address is only accepted once trading is active.
func (c *Config) TransferOwnership(caller, newOwner common.Address) (common.Address, error) {
	if c.owner == (common.Address{}) || caller != c.owner {
		return common.Address{}, fmt.Errorf("%w: %s", constants.ErrUnauthorized, caller.Hex())
	}
	if newOwner == (common.Address{}) && !c.tradingActive {
		return common.Address{}, constants.ErrNotLaunched
	}
	previous := c.owner
	c.owner = newOwner
	return previous, nil
}

func (c *Config) SetFeeRecipient(a common.Address) error {
	if a == (common.Address{}) {
		return fmt.Errorf("%w: fee recipient is the zero address", constants.ErrInvalidArgument)
	}
	c.feeRecipient = a
	return nil
}

func (c *Config) SetFeesEnabled(enabled bool) { c.feesEnabled = enabled }

func (c *Config) SetAntiSnipe(enabled bool) { c.antiSnipe = enabled }

// SetLimits replaces both limits. Neither may go below its floor.
func (c *Config) SetLimits(maxTx, maxWallet *uint256.Int) error {
	if maxTx == nil || maxWallet == nil {
		return fmt.Errorf("%w: missing limit", constants.ErrInvalidArgument)
	}
	if floor := c.MaxTxFloor(); maxTx.Lt(floor) {
		return fmt.Errorf("%w: max tx %s below floor %s", constants.ErrInvalidArgument, maxTx.Dec(), floor.Dec())
	}
	if floor := c.MaxWalletFloor(); maxWallet.Lt(floor) {
		return fmt.Errorf("%w: max wallet %s below floor %s", constants.ErrInvalidArgument, maxWallet.Dec(), floor.Dec())
	}
	c.maxTx = maxTx.Clone()
	c.maxWallet = maxWallet.Clone()
	return nil
}

func (c *Config) SetPair(a common.Address, isPair bool) error {
	if a == (common.Address{}) {
		return fmt.Errorf("%w: pair is the zero address", constants.ErrInvalidArgument)
	}
	c.pairs[a] = isPair
	return nil
}

func (c *Config) SetRouter(a common.Address, isRouter bool) error {
	if a == (common.Address{}) {
		return fmt.Errorf("%w: router is the zero address", constants.ErrInvalidArgument)
	}
	c.routers[a] = isRouter
	return nil
}

func (c *Config) SetLaunchBuyFee(bp uint64) error {
	if bp > constants.MaxLaunchBuyFeeBp {
		return fmt.Errorf("%w: launch buy fee %d bp above %d bp", constants.ErrInvalidArgument, bp, constants.MaxLaunchBuyFeeBp)
	}
	c.launchBuyFeeBp = bp
	return nil
}

func (c *Config) recordBuy(a common.Address, height uint64) {
	c.lastBuy[a] = height
}
