// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"testing"

	"github.com/luxfi/tokengate/pkg/application"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateRPC(t *testing.T) {
	require := require.New(t)
	app := application.New()
	v := config.New()
	app.Setup(zap.NewNop(), v)

	rpc := ""
	require.ErrorIs(ValidateRPC(app, &rpc), constants.ErrInvalidArgument)

	v.Set(config.KeyRPC, "http://127.0.0.1:9630/ext/bc/C/rpc")
	require.NoError(ValidateRPC(app, &rpc))
	require.Equal("http://127.0.0.1:9630/ext/bc/C/rpc", rpc)

	rpc = "not a url"
	require.ErrorIs(ValidateRPC(app, &rpc), constants.ErrInvalidArgument)
}

func TestAddRPCFlagChainsPreRun(t *testing.T) {
	require := require.New(t)
	app := application.New()
	app.Setup(zap.NewNop(), config.New())

	ran := false
	cmd := &cobra.Command{
		Use:     "probe",
		PreRunE: func(*cobra.Command, []string) error { ran = true; return nil },
	}
	var rpc string
	AddRPCFlagToCmd(cmd, app, &rpc)
	require.NoError(cmd.Flags().Set("rpc", "https://api.lux.network/ext/bc/C/rpc"))
	require.NoError(cmd.PreRunE(cmd, nil))
	require.True(ran)
}
