// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/registry"
	"github.com/luxfi/tokengate/pkg/token"
)

// Result is the outcome of one step.
type Result struct {
	Index   int
	Step    Step
	Outcome policy.Outcome
	Err     error
	// Mismatch is set when the step did not behave as the scenario expected.
	Mismatch error
}

func (r Result) OK() bool { return r.Mismatch == nil }

type runner struct {
	ctx context.Context
	s   *Scenario
	tok *token.Token
}

type handler func(r *runner, st Step) (policy.Outcome, error)

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		OpTransfer:          (*runner).transfer,
		OpActivate:          (*runner).activate,
		OpSetPair:           (*runner).setPair,
		OpSetRouter:         (*runner).setRouter,
		OpSetLimits:         (*runner).setLimits,
		OpSetLaunchFee:      (*runner).setLaunchFee,
		OpSetFees:           (*runner).setFees,
		OpSetAntiSnipe:      (*runner).setAntiSnipe,
		OpSetFeeRecipient:   (*runner).setFeeRecipient,
		OpTransferOwnership: (*runner).transferOwnership,
		OpRenounce:          (*runner).renounce,
		OpDiscover:          (*runner).discover,
		OpExpectBalance:     (*runner).expectBalance,
	}
}

// Run executes every step against tok and checks each against its
// expectation. All steps run; the returned error joins every mismatch.
// Scenarios built by hand are validated the same way Parse validates them.
func Run(ctx context.Context, s *Scenario, tok *token.Token) ([]Result, error) {
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidArgument, err)
	}
	if len(s.Pools) > 0 {
		pools, err := s.registry(tok)
		if err != nil {
			return nil, err
		}
		tok.Admin().SetRegistry(pools)
	}
	r := &runner{ctx: ctx, s: s, tok: tok}
	results := make([]Result, 0, len(s.Steps))
	var mismatches []error
	for i, st := range s.Steps {
		handler, ok := handlers[st.Op]
		if !ok {
			return results, fmt.Errorf("%w: step %d: unknown op %q", constants.ErrInvalidArgument, i, st.Op)
		}
		out, err := handler(r, st)
		res := Result{Index: i, Step: st, Outcome: out, Err: err}
		res.Mismatch = check(st, out, err)
		if res.Mismatch != nil {
			mismatches = append(mismatches, fmt.Errorf("step %d (%s): %w", i, st.Op, res.Mismatch))
		}
		results = append(results, res)
	}
	return results, errors.Join(mismatches...)
}

func (s *Scenario) registry(tok *token.Token) (*registry.Static, error) {
	pools := registry.NewStatic()
	for i, p := range s.Pools {
		counter, err := s.Resolve(p.Counter)
		if err != nil {
			return nil, fmt.Errorf("pool %d: %w", i, err)
		}
		addr, err := s.Resolve(p.Address)
		if err != nil {
			return nil, fmt.Errorf("pool %d: %w", i, err)
		}
		if err := pools.Add(tok.Self(), counter, p.Tier, addr); err != nil {
			return nil, fmt.Errorf("pool %d: %w", i, err)
		}
	}
	return pools, nil
}

func check(st Step, out policy.Outcome, err error) error {
	if st.Expect == "" {
		if err != nil {
			return fmt.Errorf("unexpected error: %w", err)
		}
	} else {
		want, _ := ErrorKind(st.Expect)
		if !errors.Is(err, want) {
			return fmt.Errorf("expected %v, got %v", want, err)
		}
	}
	if st.ExpectFee != "" {
		want, perr := uint256.FromDecimal(st.ExpectFee)
		if perr != nil {
			return fmt.Errorf("bad expect_fee %q: %w", st.ExpectFee, perr)
		}
		if got := out.FeeAmount(); !got.Eq(want) {
			return fmt.Errorf("expected fee %s, got %s", want.Dec(), got.Dec())
		}
	}
	return nil
}

func parseAmount(field, s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", constants.ErrInvalidArgument, field, s, err)
	}
	return v, nil
}

func (r *runner) block(st Step) policy.BlockContext {
	return policy.BlockContext{Height: st.Height, Time: st.Time}
}

func (r *runner) enabled(st Step) bool {
	return st.Enabled == nil || *st.Enabled
}

func (r *runner) transfer(st Step) (policy.Outcome, error) {
	from, err := r.s.Resolve(st.From)
	if err != nil {
		return policy.Outcome{}, err
	}
	to, err := r.s.Resolve(st.To)
	if err != nil {
		return policy.Outcome{}, err
	}
	amount, err := parseAmount("amount", st.Amount)
	if err != nil {
		return policy.Outcome{}, err
	}
	return r.tok.Transfer(from, to, amount, r.block(st))
}

// caller resolves the step's caller and subject account.
func (r *runner) caller(st Step) (common.Address, common.Address, error) {
	c, err := r.s.Resolve(st.Caller)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	a, err := r.s.Resolve(st.Account)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return c, a, nil
}

func (r *runner) activate(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().ActivateTrading(c, r.block(st))
}

func (r *runner) setPair(st Step) (policy.Outcome, error) {
	c, a, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetPair(c, a, r.enabled(st))
}

func (r *runner) setRouter(st Step) (policy.Outcome, error) {
	c, a, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetRouter(c, a, r.enabled(st))
}

func (r *runner) setLimits(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	maxTx, err := parseAmount("max_tx", st.MaxTx)
	if err != nil {
		return policy.Outcome{}, err
	}
	maxWallet, err := parseAmount("max_wallet", st.MaxWallet)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetLimits(c, maxTx, maxWallet)
}

func (r *runner) setLaunchFee(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetLaunchBuyFee(c, st.Rate)
}

func (r *runner) setFees(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetFeesEnabled(c, r.enabled(st))
}

func (r *runner) setAntiSnipe(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetAntiSnipe(c, r.enabled(st))
}

func (r *runner) setFeeRecipient(st Step) (policy.Outcome, error) {
	c, a, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Admin().SetFeeRecipient(c, a)
}

func (r *runner) transferOwnership(st Step) (policy.Outcome, error) {
	c, a, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Ownership().TransferOwnership(c, a)
}

func (r *runner) renounce(st Step) (policy.Outcome, error) {
	c, _, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	return policy.Outcome{}, r.tok.Ownership().RenounceOwnership(c)
}

func (r *runner) discover(st Step) (policy.Outcome, error) {
	c, counter, err := r.caller(st)
	if err != nil {
		return policy.Outcome{}, err
	}
	tiers := st.Tiers
	if len(tiers) == 0 {
		tiers = constants.DefaultFeeTiers
	}
	_, err = r.tok.Admin().DiscoverPools(r.ctx, c, counter, tiers)
	return policy.Outcome{}, err
}

func (r *runner) expectBalance(st Step) (policy.Outcome, error) {
	a, err := r.s.Resolve(st.Account)
	if err != nil {
		return policy.Outcome{}, err
	}
	want, err := parseAmount("amount", st.Amount)
	if err != nil {
		return policy.Outcome{}, err
	}
	if got := r.tok.BalanceOf(a); !got.Eq(want) {
		return policy.Outcome{}, fmt.Errorf("balance of %s is %s, expected %s", r.s.Alias(a), got.Dec(), want.Dec())
	}
	return policy.Outcome{}, nil
}
