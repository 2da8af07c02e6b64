// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package application

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/config"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/events"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	initializer = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	self        = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	router      = common.HexToAddress("0x00000000000000000000000000000000000000e1")
)

func newTestApp(t *testing.T) *Gate {
	t.Helper()
	v := config.New()
	v.Set(config.KeyInitializer, initializer.Hex())
	v.Set(config.KeySelf, self.Hex())
	app := New()
	app.Setup(zap.NewNop(), v)
	return app
}

func TestNewTokenFromConfig(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t)

	tok, err := app.NewToken(nil)
	require.NoError(err)
	require.Equal(constants.TokenSymbol, tok.Symbol())
	require.True(tok.BalanceOf(initializer).Eq(uint256.NewInt(constants.TotalSupplyUnits)))
	require.Equal(initializer, tok.Config().Owner())
	require.Equal(self, tok.Self())
}

func TestNewTokenRecordsEvents(t *testing.T) {
	require := require.New(t)
	app := newTestApp(t)

	tok, err := app.NewToken(nil)
	require.NoError(err)
	require.NoError(tok.Admin().SetRouter(initializer, router, true))

	got := app.Events.OfKind(events.RouterSet)
	require.Len(got, 1)
	require.Equal(router, got[0].Account)
}

func TestNewTokenRequiresInitializer(t *testing.T) {
	require := require.New(t)
	app := New()
	app.Setup(zap.NewNop(), config.New())

	_, err := app.NewToken(nil)
	require.ErrorIs(err, constants.ErrInvalidArgument)
}
