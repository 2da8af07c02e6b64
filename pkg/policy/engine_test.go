// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/internal/testutils"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/ledger"
	"github.com/stretchr/testify/require"
)

const (
	startHeight = 100
	startTime   = 1_700_000_000
)

type fixture struct {
	acc    testutils.Accounts
	cfg    *Config
	ledger *ledger.Ledger
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	require := require.New(t)
	acc := testutils.NewAccounts()
	cfg, err := NewConfig(Params{
		TotalSupply:    uint256.NewInt(constants.TotalSupplyUnits),
		Owner:          acc.Owner,
		Self:           acc.Self,
		FeeRecipient:   acc.Treasury,
		BuyFeeBp:       constants.DefaultBuyFeeBp,
		LaunchBuyFeeBp: constants.DefaultLaunchBuyFeeBp,
		LaunchWindow:   constants.DefaultLaunchWindow,
	})
	require.NoError(err)
	require.NoError(cfg.SetPair(acc.Pair, true))
	l := ledger.New(cfg.TotalSupply())
	require.NoError(l.Mint(acc.Owner))
	return &fixture{acc: acc, cfg: cfg, ledger: l, engine: NewEngine(cfg, l)}
}

func (f *fixture) activate(t *testing.T) {
	require.NoError(t, f.cfg.Activate(BlockContext{Height: startHeight, Time: startTime}))
}

func at(height uint64) BlockContext {
	return BlockContext{Height: height, Time: startTime + 10}
}

func TestRuleOrder(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, []string{
		RuleNullAccount,
		RuleRouterExemption,
		RuleStandardExemption,
		RuleTradingGate,
		RuleClassify,
		RuleAntiSnipe,
		RuleFee,
		RuleSettle,
	}, f.engine.Rules())
}

func TestNullAccountPassesThrough(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)

	out := f.engine.Decide(common.Address{}, f.acc.Alice, uint256.NewInt(1), at(1))
	require.Equal(PassThrough, out.Kind)
	require.Equal(RuleNullAccount, out.Rule)

	out = f.engine.Decide(f.acc.Alice, common.Address{}, uint256.NewInt(1), at(1))
	require.Equal(PassThrough, out.Kind)
	require.Equal(RuleNullAccount, out.Rule)
}

func TestExemptionsBypassGate(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	require.NoError(f.cfg.SetRouter(f.acc.Router, true))

	out := f.engine.Decide(f.acc.Router, f.acc.Alice, uint256.NewInt(1), at(1))
	require.Equal(PassThrough, out.Kind)
	require.Equal(RuleRouterExemption, out.Rule)

	// a router that is also the owner still settles on the router rule
	require.NoError(f.cfg.SetRouter(f.acc.Owner, true))
	out = f.engine.Decide(f.acc.Owner, f.acc.Alice, uint256.NewInt(1), at(1))
	require.Equal(RuleRouterExemption, out.Rule)

	for _, exempt := range []common.Address{f.acc.Self, f.acc.Treasury} {
		out = f.engine.Decide(exempt, f.acc.Alice, uint256.NewInt(1), at(1))
		require.Equal(PassThrough, out.Kind)
		require.Equal(RuleStandardExemption, out.Rule)
		out = f.engine.Decide(f.acc.Alice, exempt, uint256.NewInt(1), at(1))
		require.Equal(RuleStandardExemption, out.Rule)
	}
}

func TestExemptBuyPaysNoFee(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	huge := new(uint256.Int).Mul(f.cfg.MaxWallet(), uint256.NewInt(2))
	out := f.engine.Decide(f.acc.Pair, f.acc.Owner, huge, at(startHeight))
	require.Equal(PassThrough, out.Kind)
	require.Equal(RuleStandardExemption, out.Rule)
	_, recorded := f.cfg.LastBuy(f.acc.Owner)
	require.False(recorded)
}

func TestTradingGate(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)

	out := f.engine.Decide(f.acc.Alice, f.acc.Bob, uint256.NewInt(1), at(1))
	require.Equal(Reject, out.Kind)
	require.ErrorIs(out.Err(), constants.ErrTradingInactive)
	require.Equal(RuleTradingGate, out.Rule)

	// liquidity seeding goes through the pair without fee or limits
	big := new(uint256.Int).Mul(f.cfg.MaxWallet(), uint256.NewInt(3))
	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, big, at(1))
	require.Equal(PassThrough, out.Kind)
	require.Equal(RuleSettle, out.Rule)
	out = f.engine.Decide(f.acc.Alice, f.acc.Pair, big, at(1))
	require.Equal(PassThrough, out.Kind)

	f.activate(t)
	out = f.engine.Decide(f.acc.Alice, f.acc.Bob, big, at(startHeight+1))
	require.Equal(PassThrough, out.Kind)
	require.True(out.FeeAmount().IsZero())
}

func TestLaunchProtection(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	launchCap := new(uint256.Int).Div(f.cfg.MaxTx(), uint256.NewInt(constants.LaunchProtectionDivisor))
	amount := new(uint256.Int).Add(launchCap, uint256.NewInt(1))

	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, amount, at(startHeight))
	require.ErrorIs(out.Err(), constants.ErrLaunchProtection)

	out = f.engine.Decide(f.acc.Pair, f.acc.Bob, amount, at(startHeight+constants.LaunchProtectionBlocks))
	require.ErrorIs(out.Err(), constants.ErrLaunchProtection)

	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, amount, at(startHeight+constants.LaunchProtectionBlocks+1))
	require.Equal(SplitWithFee, out.Kind)

	// exactly at the cap is allowed
	out = f.engine.Decide(f.acc.Pair, f.acc.Bob, launchCap, at(startHeight+1))
	require.Equal(SplitWithFee, out.Kind)
}

func TestOneBuyPerBlock(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	small := uint256.NewInt(1_000)
	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, small, at(200))
	require.Equal(SplitWithFee, out.Kind)

	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, small, at(200))
	require.ErrorIs(out.Err(), constants.ErrOneBuyPerBlock)

	// other buyers and later blocks are unaffected
	out = f.engine.Decide(f.acc.Pair, f.acc.Bob, small, at(200))
	require.Equal(SplitWithFee, out.Kind)
	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, small, at(201))
	require.Equal(SplitWithFee, out.Kind)

	// sells never count as buys
	out = f.engine.Decide(f.acc.Alice, f.acc.Pair, small, at(201))
	require.Equal(PassThrough, out.Kind)
}

func TestRejectedBuyConsumesBlockSlot(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	over := new(uint256.Int).Add(f.cfg.MaxTx(), uint256.NewInt(1))
	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, over, at(300))
	require.ErrorIs(out.Err(), constants.ErrExceedsMaxTx)

	last, ok := f.cfg.LastBuy(f.acc.Alice)
	require.True(ok)
	require.Equal(uint64(300), last)

	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, uint256.NewInt(1), at(300))
	require.ErrorIs(out.Err(), constants.ErrOneBuyPerBlock)
}

func TestMaxWallet(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	// park the buyer one unit under the wallet limit
	held := new(uint256.Int).Sub(f.cfg.MaxWallet(), uint256.NewInt(1))
	require.NoError(f.ledger.Transfer(f.acc.Owner, f.acc.Alice, held))

	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, uint256.NewInt(2), at(400))
	require.ErrorIs(out.Err(), constants.ErrExceedsMaxWallet)

	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, uint256.NewInt(1), at(401))
	require.Equal(SplitWithFee, out.Kind)
}

func TestSellLimit(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)

	over := new(uint256.Int).Add(f.cfg.MaxTx(), uint256.NewInt(1))
	out := f.engine.Decide(f.acc.Alice, f.acc.Pair, over, at(500))
	require.ErrorIs(out.Err(), constants.ErrExceedsMaxTx)

	out = f.engine.Decide(f.acc.Alice, f.acc.Pair, f.cfg.MaxTx(), at(500))
	require.Equal(PassThrough, out.Kind)
	require.True(out.FeeAmount().IsZero())

	require.NoError(f.cfg.SetLimits(over, f.cfg.MaxWallet()))
	out = f.engine.Decide(f.acc.Alice, f.acc.Pair, over, at(500))
	require.Equal(PassThrough, out.Kind)
}

func TestAntiSnipeDisabled(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)
	f.cfg.SetAntiSnipe(false)

	over := new(uint256.Int).Add(f.cfg.MaxWallet(), uint256.NewInt(1))
	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, over, at(startHeight))
	require.Equal(SplitWithFee, out.Kind)
	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, over, at(startHeight))
	require.Equal(SplitWithFee, out.Kind)
	_, recorded := f.cfg.LastBuy(f.acc.Alice)
	require.False(recorded)
}

func TestBuyFeeWindow(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)
	amount := uint256.NewInt(1_000)
	window := uint64(constants.DefaultLaunchWindow / time.Second)

	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, amount, BlockContext{Height: 600, Time: startTime + window})
	require.Equal(SplitWithFee, out.Kind)
	require.Equal(uint64(200), out.Fee.Uint64())
	require.Equal(RuleSettle, out.Rule)

	out = f.engine.Decide(f.acc.Pair, f.acc.Alice, amount, BlockContext{Height: 601, Time: startTime + window + 1})
	require.Equal(SplitWithFee, out.Kind)
	require.Equal(uint64(30), out.Fee.Uint64())

	require.NoError(f.cfg.SetLaunchBuyFee(constants.MaxLaunchBuyFeeBp))
	out = f.engine.Decide(f.acc.Pair, f.acc.Bob, amount, BlockContext{Height: 602, Time: startTime})
	require.Equal(uint64(250), out.Fee.Uint64())
}

func TestFeesDisabled(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)
	f.cfg.SetFeesEnabled(false)

	out := f.engine.Decide(f.acc.Pair, f.acc.Alice, uint256.NewInt(1_000), at(700))
	require.Equal(PassThrough, out.Kind)
	require.True(out.FeeAmount().IsZero())
}

func TestFloorRoundingSkipsDustFee(t *testing.T) {
	require := require.New(t)
	acc := testutils.NewAccounts()
	cfg, err := NewConfig(Params{
		TotalSupply:    uint256.NewInt(constants.TotalSupplyUnits),
		Owner:          acc.Owner,
		LaunchBuyFeeBp: constants.DefaultLaunchBuyFeeBp,
		Rounding:       RoundFloor,
	})
	require.NoError(err)
	require.NoError(cfg.SetPair(acc.Pair, true))
	require.NoError(cfg.Activate(BlockContext{Height: 1, Time: 1}))
	e := NewEngine(cfg, ledger.New(cfg.TotalSupply()))

	out := e.Decide(acc.Pair, acc.Alice, uint256.NewInt(4), BlockContext{Height: 20, Time: 1})
	require.Equal(PassThrough, out.Kind)
	out = e.Decide(acc.Pair, acc.Bob, uint256.NewInt(5), BlockContext{Height: 20, Time: 1})
	require.Equal(SplitWithFee, out.Kind)
	require.Equal(uint64(1), out.Fee.Uint64())
}

func TestDecideLeavesBalancesAlone(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.activate(t)
	before := f.ledger.BalanceOf(f.acc.Owner)
	f.engine.Decide(f.acc.Pair, f.acc.Alice, uint256.NewInt(1_000), at(800))
	require.Equal(before, f.ledger.BalanceOf(f.acc.Owner))
	require.True(f.ledger.BalanceOf(f.acc.Alice).IsZero())
}
