// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/luxfi/tokengate/pkg/constants"
)

// RoundingMode selects how a fractional fee is rounded.
type RoundingMode int

const (
	// RoundCeil rounds any non-zero fee up to at least one unit.
	RoundCeil RoundingMode = iota
	// RoundFloor truncates; small transfers can end up paying nothing.
	RoundFloor
)

func (m RoundingMode) String() string {
	switch m {
	case RoundCeil:
		return "ceil"
	case RoundFloor:
		return "floor"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// ParseRoundingMode accepts "ceil" or "floor". The empty string is ceil.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ceil", "ceiling":
		return RoundCeil, nil
	case "floor":
		return RoundFloor, nil
	default:
		return RoundCeil, fmt.Errorf("%w: unknown rounding mode %q", constants.ErrInvalidArgument, s)
	}
}

type FeeCalculator struct {
	Mode RoundingMode
}

// Fee returns amount*rateBp/10000 rounded according to the calculator mode.
func (f FeeCalculator) Fee(amount *uint256.Int, rateBp uint64) *uint256.Int {
	fee := new(uint256.Int).Mul(amount, uint256.NewInt(rateBp))
	if f.Mode == RoundCeil {
		fee.Add(fee, uint256.NewInt(constants.BasisPointsDenom-1))
	}
	return fee.Div(fee, uint256.NewInt(constants.BasisPointsDenom))
}
