// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package discovercmd

import (
	"testing"

	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/stretchr/testify/require"
)

func TestParseTiers(t *testing.T) {
	require := require.New(t)

	got, err := parseTiers([]uint{100, 500, 3000, 10000, constants.MaxFeeTier})
	require.NoError(err)
	require.Equal([]uint32{100, 500, 3000, 10000, 1<<24 - 1}, got)

	for _, bad := range []uint{constants.MaxFeeTier + 1, 1<<24 + 500, 1 << 31} {
		_, err = parseTiers([]uint{500, bad})
		require.ErrorIs(err, constants.ErrInvalidArgument, "tier %d", bad)
	}
}
