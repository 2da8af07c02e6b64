// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package feecmd

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	app *application.Gate

	amountFlag string
	rateFlag   uint64
)

// NewCmd creates the fee command
func NewCmd(injectedApp *application.Gate) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Quote the buy fee for an amount",
		Long: `Computes the fee and net amount for a buy of --amount base units at
--rate basis points.

The rounding mode comes from --rounding or the config.

Example:
  tokengate fee --amount 1000 --rate 2000 --rounding floor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := Quote(amountFlag, rateFlag, app.Conf.GetString(config.KeyRounding))
			if err != nil {
				return err
			}
			ux.Logger.PrintToUser("Amount:   %s", q.Amount.Dec())
			ux.Logger.PrintToUser("Rate:     %d bp (%s)", q.RateBp, q.Rounding)
			ux.Logger.PrintToUser("Fee:      %s", q.Fee.Dec())
			ux.Logger.PrintToUser("Net:      %s", q.Net.Dec())
			return nil
		},
	}
	cmd.Flags().StringVar(&amountFlag, "amount", "", "transfer amount in base units")
	cmd.Flags().Uint64Var(&rateFlag, "rate", constants.DefaultLaunchBuyFeeBp, "fee rate in basis points")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

type FeeQuote struct {
	Amount   *uint256.Int
	RateBp   uint64
	Rounding policy.RoundingMode
	Fee      *uint256.Int
	Net      *uint256.Int
}

// Quote computes the fee split for amount at rateBp. An empty rounding
// means ceil.
func Quote(amount string, rateBp uint64, rounding string) (*FeeQuote, error) {
	a, err := uint256.FromDecimal(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", constants.ErrInvalidArgument, amount, err)
	}
	if rateBp > constants.BasisPointsDenom {
		return nil, fmt.Errorf("%w: rate %d bp above %d", constants.ErrInvalidArgument, rateBp, constants.BasisPointsDenom)
	}
	mode, err := policy.ParseRoundingMode(rounding)
	if err != nil {
		return nil, err
	}
	fee := policy.FeeCalculator{Mode: mode}.Fee(a, rateBp)
	return &FeeQuote{
		Amount:   a,
		RateBp:   rateBp,
		Rounding: mode,
		Fee:      fee,
		Net:      new(uint256.Int).Sub(a, fee),
	}, nil
}
