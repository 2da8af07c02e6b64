// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package discovercmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/cmd/flags"
	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/registry"
	"github.com/luxfi/tokengate/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	app *application.Gate

	rpcURL      string
	factoryAddr string
	tokenAddr   string
	counterAddr string
	tiers       []uint
	register    bool
)

// NewCmd creates the discover command
func NewCmd(injectedApp *application.Gate) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find V3 pools pairing the token with a counter asset",
		Long: `Queries a Uniswap V3 factory for the pool of every fee tier pairing
--token with --counter.

With --register, builds the configured token and registers every pool found
as a pair, acting as the initializer.

Example:
  tokengate discover --rpc http://localhost:9630/ext/bc/C/rpc \
    --factory 0x... --token 0x... --counter 0x...`,
		Args: cobra.NoArgs,
		RunE: runDiscover,
	}
	flags.AddRPCFlagToCmd(cmd, app, &rpcURL)
	cmd.Flags().StringVar(&factoryAddr, "factory", "", "V3 factory address (default from config)")
	cmd.Flags().StringVar(&tokenAddr, "token", "", "token contract address (default: configured self)")
	cmd.Flags().StringVar(&counterAddr, "counter", "", "counter asset address")
	cmd.Flags().UintSliceVar(&tiers, "tiers", nil, "fee tiers to probe (default from config)")
	cmd.Flags().BoolVar(&register, "register", false, "register the pools found as pairs")
	_ = cmd.MarkFlagRequired("counter")
	return cmd
}

func runDiscover(_ *cobra.Command, _ []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if factoryAddr == "" {
		factoryAddr = cfg.Factory
	}
	factory, err := config.ParseAddress("factory", factoryAddr)
	if err != nil {
		return err
	}
	if factory == (common.Address{}) {
		return fmt.Errorf("%w: --factory is required", constants.ErrInvalidArgument)
	}
	if tokenAddr == "" {
		tokenAddr = cfg.Self
	}
	self, err := config.ParseAddress("token", tokenAddr)
	if err != nil {
		return err
	}
	if self == (common.Address{}) {
		return fmt.Errorf("%w: --token is required", constants.ErrInvalidArgument)
	}
	counter, err := config.ParseAddress("counter", counterAddr)
	if err != nil {
		return err
	}
	feeTiers := cfg.FeeTiers
	if len(tiers) > 0 {
		if feeTiers, err = parseTiers(tiers); err != nil {
			return err
		}
	}

	pools, err := registry.DialV3Factory(rpcURL, factory)
	if err != nil {
		return err
	}
	defer pools.Close()

	ux.Logger.Info("querying factory %s for %s / %s", factory.Hex(), self.Hex(), counter.Hex())
	ctx, cancel := context.WithTimeout(context.Background(), constants.RPCRequestTimeout)
	defer cancel()

	if register {
		return registerPools(ctx, pools, self, counter, feeTiers)
	}

	table := ux.NewTable(ux.Logger.Writer(), "Fee tier", "Pool")
	for _, tier := range feeTiers {
		pool, ok, err := pools.LookupPool(ctx, self, counter, tier)
		if err != nil {
			return err
		}
		found := "-"
		if ok {
			found = pool.Hex()
		}
		table.AppendRow(strconv.FormatUint(uint64(tier), 10), found)
	}
	return table.Render()
}

func registerPools(ctx context.Context, pools registry.PoolRegistry, self, counter common.Address, feeTiers []uint32) error {
	app.Conf.Set(config.KeySelf, self.Hex())
	tok, err := app.NewToken(pools)
	if err != nil {
		return err
	}
	owner := tok.Ownership().Owner()
	found, err := tok.Admin().DiscoverPools(ctx, owner, counter, feeTiers)
	if err != nil {
		return err
	}
	app.Log.Debug("discovery finished", zap.Int("pools", len(found)))
	if len(found) == 0 {
		ux.Logger.RedXToUser("no pools found for %s / %s", self.Hex(), counter.Hex())
		return nil
	}
	for _, pool := range found {
		ux.Logger.GreenCheckmarkToUser("registered pair %s", pool.Hex())
	}
	return nil
}

// parseTiers converts --tier values to fee tiers. Tiers are uint24 on chain.
func parseTiers(tiers []uint) ([]uint32, error) {
	out := make([]uint32, len(tiers))
	for i, t := range tiers {
		if t > constants.MaxFeeTier {
			return nil, fmt.Errorf("%w: fee tier %d exceeds %d", constants.ErrInvalidArgument, t, constants.MaxFeeTier)
		}
		out[i] = uint32(t)
	}
	return out, nil
}
