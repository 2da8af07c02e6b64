// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// View is a read-only window onto a Config. Changes go through the admin
// surface and the ownership guard.
type View struct {
	c *Config
}

func (c *Config) View() View { return View{c: c} }

func (v View) TotalSupply() *uint256.Int               { return v.c.TotalSupply() }
func (v View) MaxTxFloor() *uint256.Int                { return v.c.MaxTxFloor() }
func (v View) MaxWalletFloor() *uint256.Int            { return v.c.MaxWalletFloor() }
func (v View) Owner() common.Address                   { return v.c.Owner() }
func (v View) Self() common.Address                    { return v.c.Self() }
func (v View) FeeRecipient() common.Address            { return v.c.FeeRecipient() }
func (v View) FeesEnabled() bool                       { return v.c.FeesEnabled() }
func (v View) AntiSnipe() bool                         { return v.c.AntiSnipe() }
func (v View) MaxTx() *uint256.Int                     { return v.c.MaxTx() }
func (v View) MaxWallet() *uint256.Int                 { return v.c.MaxWallet() }
func (v View) IsPair(a common.Address) bool            { return v.c.IsPair(a) }
func (v View) IsRouter(a common.Address) bool          { return v.c.IsRouter(a) }
func (v View) IsExempt(a common.Address) bool          { return v.c.IsExempt(a) }
func (v View) TradingActive() bool                     { return v.c.TradingActive() }
func (v View) StartHeight() uint64                     { return v.c.StartHeight() }
func (v View) StartTime() uint64                       { return v.c.StartTime() }
func (v View) BuyFeeBp() uint64                        { return v.c.BuyFeeBp() }
func (v View) SellFeeBp() uint64                       { return v.c.SellFeeBp() }
func (v View) LaunchBuyFeeBp() uint64                  { return v.c.LaunchBuyFeeBp() }
func (v View) Rounding() RoundingMode                  { return v.c.Rounding() }
func (v View) LaunchWindow() time.Duration             { return v.c.LaunchWindow() }
func (v View) LastBuy(a common.Address) (uint64, bool) { return v.c.LastBuy(a) }
