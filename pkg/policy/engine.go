// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
)

// Rule names, in evaluation order.
const (
	RuleNullAccount       = "null-account"
	RuleRouterExemption   = "router-exemption"
	RuleStandardExemption = "standard-exemption"
	RuleTradingGate       = "trading-gate"
	RuleClassify          = "classify"
	RuleAntiSnipe         = "anti-snipe"
	RuleFee               = "fee"
	RuleSettle            = "settle"
)

// BalanceReader is the read side of the ledger the engine needs.
type BalanceReader interface {
	BalanceOf(account common.Address) *uint256.Int
}

type request struct {
	from   common.Address
	to     common.Address
	amount *uint256.Int
	ctx    BlockContext

	buy  bool
	sell bool
	fee  *uint256.Int
}

// A rule either settles the decision (done == true) or annotates the
// request and lets the next rule run.
type rule struct {
	name string
	eval func(r *request) (out Outcome, done bool)
}

// Engine decides the fate of every transfer. It is not safe for concurrent
// use; the host serialises requests.
type Engine struct {
	cfg      *Config
	balances BalanceReader
	fees     FeeCalculator
	rules    []rule
}

func NewEngine(cfg *Config, balances BalanceReader) *Engine {
	e := &Engine{
		cfg:      cfg,
		balances: balances,
		fees:     FeeCalculator{Mode: cfg.Rounding()},
	}
	e.rules = []rule{
		{RuleNullAccount, e.nullAccount},
		{RuleRouterExemption, e.routerExemption},
		{RuleStandardExemption, e.standardExemption},
		{RuleTradingGate, e.tradingGate},
		{RuleClassify, e.classify},
		{RuleAntiSnipe, e.antiSnipe},
		{RuleFee, e.fee},
	}
	return e
}

// Rules lists the rule names in the order Decide evaluates them.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules)+1)
	for _, r := range e.rules {
		names = append(names, r.name)
	}
	return append(names, RuleSettle)
}

// Decide runs the rule chain once for a transfer of amount from -> to.
// A buy that gets past the one-buy-per-block check records its height even
// when a later limit check rejects it.
func (e *Engine) Decide(from, to common.Address, amount *uint256.Int, ctx BlockContext) Outcome {
	req := &request{from: from, to: to, amount: amount, ctx: ctx}
	for _, r := range e.rules {
		if out, done := r.eval(req); done {
			return out
		}
	}
	if req.fee != nil && !req.fee.IsZero() {
		return Outcome{Kind: SplitWithFee, Fee: req.fee, Rule: RuleSettle}
	}
	return pass(RuleSettle)
}

func (e *Engine) nullAccount(r *request) (Outcome, bool) {
	if r.from == (common.Address{}) || r.to == (common.Address{}) {
		return pass(RuleNullAccount), true
	}
	return Outcome{}, false
}

func (e *Engine) routerExemption(r *request) (Outcome, bool) {
	if e.cfg.IsRouter(r.from) || e.cfg.IsRouter(r.to) {
		return pass(RuleRouterExemption), true
	}
	return Outcome{}, false
}

func (e *Engine) standardExemption(r *request) (Outcome, bool) {
	if e.cfg.IsExempt(r.from) || e.cfg.IsExempt(r.to) {
		return pass(RuleStandardExemption), true
	}
	return Outcome{}, false
}

// Before activation only transfers touching a pair go through, so liquidity
// can be seeded.
func (e *Engine) tradingGate(r *request) (Outcome, bool) {
	if !e.cfg.TradingActive() && !e.cfg.IsPair(r.from) && !e.cfg.IsPair(r.to) {
		return reject(RuleTradingGate, constants.ErrTradingInactive), true
	}
	return Outcome{}, false
}

func (e *Engine) classify(r *request) (Outcome, bool) {
	switch {
	case e.cfg.IsPair(r.from):
		r.buy = true
	case e.cfg.IsPair(r.to):
		r.sell = true
	}
	return Outcome{}, false
}

func (e *Engine) antiSnipe(r *request) (Outcome, bool) {
	cfg := e.cfg
	if !cfg.AntiSnipe() || !cfg.TradingActive() {
		return Outcome{}, false
	}
	switch {
	case r.buy:
		if last, ok := cfg.LastBuy(r.to); ok && last == r.ctx.Height {
			return reject(RuleAntiSnipe, constants.ErrOneBuyPerBlock), true
		}
		cfg.recordBuy(r.to, r.ctx.Height)
		if r.amount.Gt(cfg.maxTx) {
			return reject(RuleAntiSnipe, constants.ErrExceedsMaxTx), true
		}
		after := new(uint256.Int).Add(e.balances.BalanceOf(r.to), r.amount)
		if after.Gt(cfg.maxWallet) {
			return reject(RuleAntiSnipe, constants.ErrExceedsMaxWallet), true
		}
		if r.ctx.Height <= cfg.StartHeight()+constants.LaunchProtectionBlocks {
			launchCap := new(uint256.Int).Div(cfg.maxTx, uint256.NewInt(constants.LaunchProtectionDivisor))
			if r.amount.Gt(launchCap) {
				return reject(RuleAntiSnipe, constants.ErrLaunchProtection), true
			}
		}
	case r.sell:
		if r.amount.Gt(cfg.maxTx) {
			return reject(RuleAntiSnipe, constants.ErrExceedsMaxTx), true
		}
	}
	return Outcome{}, false
}

// Only buys pay a fee. The launch rate applies until the launch window has
// fully elapsed.
func (e *Engine) fee(r *request) (Outcome, bool) {
	cfg := e.cfg
	if !r.buy || !cfg.TradingActive() || !cfg.FeesEnabled() {
		return Outcome{}, false
	}
	rate := cfg.LaunchBuyFeeBp()
	if r.ctx.Time > cfg.StartTime()+cfg.launchWindow {
		rate = cfg.BuyFeeBp()
	}
	r.fee = e.fees.Fee(r.amount, rate)
	return Outcome{}, false
}
