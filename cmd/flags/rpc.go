// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"net/url"

	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/spf13/cobra"
)

const (
	rpcURLFLag = "rpc"
)

// AddRPCFlagToCmd adds --rpc to cmd. Before the command runs the value falls
// back to the configured endpoint and is validated.
func AddRPCFlagToCmd(cmd *cobra.Command, app *application.Gate, rpc *string) {
	cmd.Flags().StringVar(rpc, rpcURLFLag, "", "RPC endpoint (default from config)")

	rpcPreRun := func(cmd *cobra.Command, args []string) error {
		return ValidateRPC(app, rpc)
	}

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}
		return rpcPreRun(cmd, args)
	}
}

func ValidateRPC(app *application.Gate, rpc *string) error {
	if *rpc == "" && app != nil && app.Conf != nil {
		*rpc = app.Conf.GetString(config.KeyRPC)
	}
	if *rpc == "" {
		return fmt.Errorf("%w: --%s is required", constants.ErrInvalidArgument, rpcURLFLag)
	}
	u, err := url.ParseRequestURI(*rpc)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: invalid RPC URL %q", constants.ErrInvalidArgument, *rpc)
	}
	return nil
}
