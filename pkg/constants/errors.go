// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrUnauthorized        = errors.New("caller is not the owner")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAlreadyActive       = errors.New("trading already active")
	ErrNotLaunched         = errors.New("trading not launched yet")
	ErrTradingInactive     = errors.New("trading not active")
	ErrOneBuyPerBlock      = errors.New("one buy per block")
	ErrExceedsMaxTx        = errors.New("exceeds max transaction")
	ErrExceedsMaxWallet    = errors.New("exceeds max wallet")
	ErrLaunchProtection    = errors.New("launch protection: buy too large")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyMinted       = errors.New("supply already minted")
)
