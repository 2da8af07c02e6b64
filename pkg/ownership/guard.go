// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ownership

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/events"
	"github.com/luxfi/tokengate/pkg/policy"
)

// State is the launch state of the token as seen by the guard.
type State int

const (
	// StatePreLaunch is before trading has ever been activated
	StatePreLaunch State = iota
	// StateLaunched is after activation; it never goes back
	StateLaunched
)

func (s State) String() string {
	if s == StateLaunched {
		return "launched"
	}
	return "pre-launch"
}

// Guard gates changes to the owner identity. Before launch the owner can
// hand control to another account but cannot drop it.
type Guard struct {
	cfg  *policy.Config
	sink events.Sink
}

func NewGuard(cfg *policy.Config, sink events.Sink) *Guard {
	if sink == nil {
		sink = events.Discard
	}
	return &Guard{cfg: cfg, sink: sink}
}

func (g *Guard) Owner() common.Address {
	return g.cfg.Owner()
}

func (g *Guard) State() State {
	if g.cfg.TradingActive() {
		return StateLaunched
	}
	return StatePreLaunch
}

// TransferOwnership hands the owner role to newOwner. Passing the zero
// address is a renounce and needs the token to be launched.
func (g *Guard) TransferOwnership(caller, newOwner common.Address) error {
	previous, err := g.cfg.TransferOwnership(caller, newOwner)
	if err != nil {
		return fmt.Errorf("transfer ownership: %w", err)
	}
	g.emit(previous, newOwner)
	return nil
}

// RenounceOwnership leaves the token without an owner for good.
func (g *Guard) RenounceOwnership(caller common.Address) error {
	previous, err := g.cfg.TransferOwnership(caller, common.Address{})
	if err != nil {
		return fmt.Errorf("renounce ownership: %w", err)
	}
	g.emit(previous, common.Address{})
	return nil
}

func (g *Guard) emit(previous, newOwner common.Address) {
	g.sink.Emit(events.Event{
		Kind:     events.OwnershipTransferred,
		Account:  newOwner,
		Previous: previous,
	})
}
