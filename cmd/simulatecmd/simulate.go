// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulatecmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/scenario"
	"github.com/luxfi/tokengate/pkg/token"
	"github.com/luxfi/tokengate/pkg/ux"
	"github.com/spf13/cobra"
)

var (
	app *application.Gate

	showEvents   bool
	showBalances bool
)

// NewCmd creates the simulate command
func NewCmd(injectedApp *application.Gate) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Replay a scenario against a fresh token",
		Long: `Builds a token from the current configuration and replays every step
of the scenario file, checking each against its expected result.

Example:
  tokengate simulate launch.yaml --initializer 0x... --events`,
		Args: cobra.ExactArgs(1),
		RunE: runSimulate,
	}
	cmd.Flags().BoolVar(&showEvents, "events", false, "print emitted config events")
	cmd.Flags().BoolVar(&showBalances, "balances", true, "print final balances")
	return cmd
}

func runSimulate(_ *cobra.Command, args []string) error {
	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	if err := applyAccounts(s); err != nil {
		return err
	}
	tok, err := app.NewToken(nil)
	if err != nil {
		return err
	}

	results, runErr := scenario.Run(context.Background(), s, tok)
	if s.Name != "" {
		ux.Logger.PrintToUser("Scenario: %s", s.Name)
	}
	printResults(tok, results)
	if showEvents {
		ux.Logger.PrintLineSeparator()
		ux.Logger.PrintToUser("Events:")
		for _, e := range app.Events.Events() {
			ux.Logger.PrintToUser("  %s", e)
		}
	}
	if showBalances {
		ux.Logger.PrintLineSeparator()
		printBalances(s, tok)
	}
	if runErr != nil {
		return fmt.Errorf("scenario did not behave as expected:\n%w", runErr)
	}
	ux.Logger.GreenCheckmarkToUser("%d steps matched expectations", len(results))
	return nil
}

// applyAccounts overrides the configured initializer and self with the
// accounts named by the scenario.
func applyAccounts(s *scenario.Scenario) error {
	for key, name := range map[string]string{
		config.KeyInitializer: s.Initializer,
		config.KeySelf:        s.Self,
	} {
		if name == "" {
			continue
		}
		a, err := s.Resolve(name)
		if err != nil {
			return err
		}
		app.Conf.Set(key, a.Hex())
	}
	return nil
}

func printResults(tok *token.Token, results []scenario.Result) {
	table := ux.NewTable(ux.Logger.Writer(), "#", "Op", "Block", "Outcome", "Fee", "Check")
	for _, r := range results {
		outcome := "ok"
		switch {
		case r.Err != nil:
			outcome = r.Err.Error()
		case r.Step.Op == scenario.OpTransfer:
			outcome = r.Outcome.Kind.String()
		}
		fee := ""
		if r.Outcome.Kind == policy.SplitWithFee {
			fee = ux.FormatUnits(r.Outcome.Fee, tok.Decimals())
		}
		check := "✓"
		if !r.OK() {
			check = "✗ " + r.Mismatch.Error()
		}
		table.AppendRow(
			strconv.Itoa(r.Index),
			describe(r.Step),
			fmt.Sprintf("%d@%d", r.Step.Height, r.Step.Time),
			outcome,
			fee,
			check,
		)
	}
	_ = table.Render()
}

func describe(st scenario.Step) string {
	switch st.Op {
	case scenario.OpTransfer:
		return fmt.Sprintf("transfer %s %s -> %s", st.Amount, st.From, st.To)
	case scenario.OpExpectBalance:
		return fmt.Sprintf("expect %s = %s", st.Account, st.Amount)
	case scenario.OpSetLaunchFee:
		return fmt.Sprintf("%s %d bp", st.Op, st.Rate)
	default:
		if st.Account != "" {
			return fmt.Sprintf("%s %s", st.Op, st.Account)
		}
		return st.Op
	}
}

func printBalances(s *scenario.Scenario, tok *token.Token) {
	table := ux.NewTable(ux.Logger.Writer(), "Account", "Balance")
	for _, holder := range tok.Holders() {
		table.AppendRow(s.Alias(holder), ux.FormatUnits(tok.BalanceOf(holder), tok.Decimals()))
	}
	_ = table.Render()
}
