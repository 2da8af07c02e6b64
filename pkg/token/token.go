// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/admin"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/events"
	"github.com/luxfi/tokengate/pkg/ledger"
	"github.com/luxfi/tokengate/pkg/metrics"
	"github.com/luxfi/tokengate/pkg/ownership"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/registry"
	"go.uber.org/zap"
)

// Params describe a token at construction.
type Params struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int

	// Initializer receives the whole supply and becomes the owner.
	Initializer common.Address
	// Self is the token's own holding account.
	Self         common.Address
	FeeRecipient common.Address

	BuyFeeBp       uint64
	LaunchBuyFeeBp uint64
	LaunchWindow   time.Duration
	Rounding       policy.RoundingMode
}

// DefaultParams returns the standard launch settings for initializer.
func DefaultParams(initializer, self common.Address) Params {
	return Params{
		Name:           constants.TokenName,
		Symbol:         constants.TokenSymbol,
		Decimals:       constants.TokenDecimals,
		TotalSupply:    uint256.NewInt(constants.TotalSupplyUnits),
		Initializer:    initializer,
		Self:           self,
		FeeRecipient:   initializer,
		BuyFeeBp:       constants.DefaultBuyFeeBp,
		LaunchBuyFeeBp: constants.DefaultLaunchBuyFeeBp,
		LaunchWindow:   constants.DefaultLaunchWindow,
		Rounding:       policy.RoundCeil,
	}
}

type options struct {
	log     *zap.Logger
	sink    events.Sink
	metrics *metrics.Collector
	pools   registry.PoolRegistry
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithEvents(sink events.Sink) Option {
	return func(o *options) { o.sink = sink }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

func WithRegistry(pools registry.PoolRegistry) Option {
	return func(o *options) { o.pools = pools }
}

// Token is a fixed-supply ledger whose transfers go through the policy
// engine. Requests must be serialised by the caller.
type Token struct {
	params  Params
	ledger  *ledger.Ledger
	cfg     *policy.Config
	engine  *policy.Engine
	guard   *ownership.Guard
	admin   *admin.Surface
	log     *zap.Logger
	metrics *metrics.Collector
}

// New mints the total supply to the initializer and wires the policy
// components together.
func New(p Params, opts ...Option) (*Token, error) {
	o := options{log: zap.NewNop(), sink: events.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.sink == nil {
		o.sink = events.Discard
	}

	cfg, err := policy.NewConfig(policy.Params{
		TotalSupply:    p.TotalSupply,
		Owner:          p.Initializer,
		Self:           p.Self,
		FeeRecipient:   p.FeeRecipient,
		BuyFeeBp:       p.BuyFeeBp,
		LaunchBuyFeeBp: p.LaunchBuyFeeBp,
		LaunchWindow:   p.LaunchWindow,
		Rounding:       p.Rounding,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token params: %w", err)
	}
	l := ledger.New(p.TotalSupply)
	if err := l.Mint(p.Initializer); err != nil {
		return nil, err
	}
	log := o.log.With(zap.String("token", p.Symbol))
	t := &Token{
		params:  p,
		ledger:  l,
		cfg:     cfg,
		engine:  policy.NewEngine(cfg, l),
		guard:   ownership.NewGuard(cfg, o.sink),
		admin:   admin.New(cfg, o.pools, o.sink, log),
		log:     log,
		metrics: o.metrics,
	}
	log.Info("token created",
		zap.String("initializer", p.Initializer.Hex()),
		zap.String("supply", p.TotalSupply.Dec()),
		zap.Stringer("rounding", p.Rounding),
	)
	return t, nil
}

func (t *Token) Name() string         { return t.params.Name }
func (t *Token) Symbol() string       { return t.params.Symbol }
func (t *Token) Decimals() uint8      { return t.params.Decimals }
func (t *Token) Params() Params       { return t.params }
func (t *Token) Self() common.Address { return t.params.Self }

func (t *Token) TotalSupply() *uint256.Int { return t.ledger.TotalSupply() }

func (t *Token) BalanceOf(account common.Address) *uint256.Int {
	return t.ledger.BalanceOf(account)
}

// Holders lists every account with a non-zero balance, sorted by address.
func (t *Token) Holders() []common.Address { return t.ledger.Holders() }

// Config is a read-only view of the policy settings.
func (t *Token) Config() policy.View { return t.cfg.View() }


func (t *Token) Admin() *admin.Surface { return t.admin }

func (t *Token) Ownership() *ownership.Guard { return t.guard }

// Transfer decides and, unless rejected, applies a transfer of amount from
// -> to. A split moves the fee to the fee recipient and the rest to `to` as
// one ledger update. The returned error wraps the rejection reason.
func (t *Token) Transfer(from, to common.Address, amount *uint256.Int, ctx policy.BlockContext) (policy.Outcome, error) {
	if from == (common.Address{}) || to == (common.Address{}) {
		return policy.Outcome{}, fmt.Errorf("%w: transfer touches the zero address", constants.ErrInvalidArgument)
	}
	if amount == nil {
		return policy.Outcome{}, fmt.Errorf("%w: missing amount", constants.ErrInvalidArgument)
	}
	// Checked up front so a short balance never leaves a recorded buy behind.
	if bal := t.ledger.BalanceOf(from); bal.Lt(amount) {
		t.metrics.ObserveDecision(policy.Reject.String(), constants.ErrInsufficientBalance.Error())
		return policy.Outcome{}, fmt.Errorf("%w: %s holds %s, needs %s",
			constants.ErrInsufficientBalance, from.Hex(), bal.Dec(), amount.Dec())
	}

	out := t.engine.Decide(from, to, amount, ctx)
	switch out.Kind {
	case policy.Reject:
		t.metrics.ObserveDecision(out.Kind.String(), out.Reason.Error())
		t.log.Debug("transfer rejected",
			zap.String("from", from.Hex()),
			zap.String("to", to.Hex()),
			zap.String("amount", amount.Dec()),
			zap.String("rule", out.Rule),
			zap.Error(out.Reason),
		)
		return out, fmt.Errorf("transfer %s -> %s: %w", from.Hex(), to.Hex(), out.Reason)
	case policy.SplitWithFee:
		net := new(uint256.Int).Sub(amount, out.Fee)
		err := t.ledger.Apply(
			ledger.Mutation{From: from, To: t.cfg.FeeRecipient(), Amount: out.Fee},
			ledger.Mutation{From: from, To: to, Amount: net},
		)
		if err != nil {
			return out, err
		}
	default:
		if err := t.ledger.Transfer(from, to, amount); err != nil {
			return out, err
		}
	}
	t.metrics.ObserveDecision(out.Kind.String(), "")
	t.metrics.ObserveApplied(out.Fee)
	t.log.Debug("transfer applied",
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.Dec()),
		zap.Stringer("outcome", out),
	)
	return out, nil
}
