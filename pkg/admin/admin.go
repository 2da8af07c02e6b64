// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/events"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/registry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Surface is the owner-only control panel over the policy config.
type Surface struct {
	cfg   *policy.Config
	pools registry.PoolRegistry
	sink  events.Sink
	log   *zap.Logger
}

func New(cfg *policy.Config, pools registry.PoolRegistry, sink events.Sink, log *zap.Logger) *Surface {
	if sink == nil {
		sink = events.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Surface{cfg: cfg, pools: pools, sink: sink, log: log}
}

// SetRegistry swaps the pool registry used by DiscoverPools.
func (s *Surface) SetRegistry(pools registry.PoolRegistry) {
	s.pools = pools
}

func (s *Surface) authorize(caller common.Address) error {
	owner := s.cfg.Owner()
	if owner == (common.Address{}) || caller != owner {
		return fmt.Errorf("%w: %s", constants.ErrUnauthorized, caller.Hex())
	}
	return nil
}

// ActivateTrading opens trading at ctx. It is irreversible.
func (s *Surface) ActivateTrading(caller common.Address, ctx policy.BlockContext) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if err := s.cfg.Activate(ctx); err != nil {
		return err
	}
	s.log.Info("trading activated", zap.Uint64("height", ctx.Height), zap.Uint64("time", ctx.Time))
	s.sink.Emit(events.Event{
		Kind:  events.TradingActivated,
		Value: fmt.Sprintf("height=%d time=%d", ctx.Height, ctx.Time),
	})
	return nil
}

func (s *Surface) SetFeeRecipient(caller, recipient common.Address) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if err := s.cfg.SetFeeRecipient(recipient); err != nil {
		return err
	}
	s.sink.Emit(events.Event{Kind: events.FeeRecipientChanged, Account: recipient})
	return nil
}

func (s *Surface) SetFeesEnabled(caller common.Address, enabled bool) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	s.cfg.SetFeesEnabled(enabled)
	s.sink.Emit(events.Event{Kind: events.FeesToggled, Value: strconv.FormatBool(enabled)})
	return nil
}

func (s *Surface) SetAntiSnipe(caller common.Address, enabled bool) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	s.cfg.SetAntiSnipe(enabled)
	s.sink.Emit(events.Event{Kind: events.AntiSnipeToggled, Value: strconv.FormatBool(enabled)})
	return nil
}

func (s *Surface) SetLimits(caller common.Address, maxTx, maxWallet *uint256.Int) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if err := s.cfg.SetLimits(maxTx, maxWallet); err != nil {
		return err
	}
	s.sink.Emit(events.Event{
		Kind:  events.LimitsChanged,
		Value: fmt.Sprintf("maxTx=%s maxWallet=%s", maxTx.Dec(), maxWallet.Dec()),
	})
	return nil
}

func (s *Surface) SetPair(caller, pair common.Address, isPair bool) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	return s.setPair(pair, isPair)
}

func (s *Surface) setPair(pair common.Address, isPair bool) error {
	if err := s.cfg.SetPair(pair, isPair); err != nil {
		return err
	}
	s.sink.Emit(events.Event{Kind: events.PairSet, Account: pair, Value: strconv.FormatBool(isPair)})
	return nil
}

func (s *Surface) SetRouter(caller, router common.Address, isRouter bool) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if err := s.cfg.SetRouter(router, isRouter); err != nil {
		return err
	}
	s.sink.Emit(events.Event{Kind: events.RouterSet, Account: router, Value: strconv.FormatBool(isRouter)})
	return nil
}

// SetLaunchBuyFee changes the buy fee charged during the launch window.
func (s *Surface) SetLaunchBuyFee(caller common.Address, bp uint64) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if err := s.cfg.SetLaunchBuyFee(bp); err != nil {
		return err
	}
	s.sink.Emit(events.Event{Kind: events.LaunchBuyFeeChanged, Value: strconv.FormatUint(bp, 10)})
	return nil
}

// DiscoverPools asks the registry for a pool between the token and
// counterAsset at every tier and registers each deployed pool as a pair.
// Lookups run concurrently; if any of them fails nothing is registered.
// It returns the registered pools in tier order.
func (s *Surface) DiscoverPools(ctx context.Context, caller, counterAsset common.Address, tiers []uint32) ([]common.Address, error) {
	if err := s.authorize(caller); err != nil {
		return nil, err
	}
	if counterAsset == (common.Address{}) {
		return nil, fmt.Errorf("%w: counter asset is the zero address", constants.ErrInvalidArgument)
	}
	if s.pools == nil {
		return nil, fmt.Errorf("%w: no pool registry configured", constants.ErrInvalidArgument)
	}
	token := s.cfg.Self()
	if token == (common.Address{}) {
		return nil, fmt.Errorf("%w: token account is not set", constants.ErrInvalidArgument)
	}
	found := make([]common.Address, len(tiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		g.Go(func() error {
			pool, ok, err := s.pools.LookupPool(gctx, token, counterAsset, tier)
			if err != nil {
				return fmt.Errorf("lookup tier %d: %w", tier, err)
			}
			if ok {
				found[i] = pool
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var registered []common.Address
	for i, pool := range found {
		if pool == (common.Address{}) {
			continue
		}
		if err := s.setPair(pool, true); err != nil {
			return registered, err
		}
		s.log.Info("registered pool",
			zap.String("pool", pool.Hex()),
			zap.Uint32("tier", tiers[i]),
			zap.String("counter", counterAsset.Hex()),
		)
		registered = append(registered, pool)
	}
	return registered, nil
}
