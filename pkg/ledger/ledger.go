// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
)

// Mutation is a single debit/credit pair.
type Mutation struct {
	From   common.Address
	To     common.Address
	Amount *uint256.Int
}

// Ledger holds per-account balances for a fixed total supply.
type Ledger struct {
	totalSupply *uint256.Int
	balances    map[common.Address]*uint256.Int
	minted      bool
}

func New(totalSupply *uint256.Int) *Ledger {
	return &Ledger{
		totalSupply: totalSupply.Clone(),
		balances:    make(map[common.Address]*uint256.Int),
	}
}

// Mint issues the entire supply to account. It can only happen once.
func (l *Ledger) Mint(account common.Address) error {
	if l.minted {
		return constants.ErrAlreadyMinted
	}
	if account == (common.Address{}) {
		return fmt.Errorf("%w: mint to zero address", constants.ErrInvalidArgument)
	}
	l.balances[account] = l.totalSupply.Clone()
	l.minted = true
	return nil
}

func (l *Ledger) TotalSupply() *uint256.Int {
	return l.totalSupply.Clone()
}

// BalanceOf returns a copy of the balance of account.
func (l *Ledger) BalanceOf(account common.Address) *uint256.Int {
	if bal, ok := l.balances[account]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(from, to common.Address, amount *uint256.Int) error {
	return l.Apply(Mutation{From: from, To: to, Amount: amount})
}

// Apply executes the mutations in order as one unit. Every mutation is checked
// against a staged copy of the touched balances; if any fails nothing is
// written.
func (l *Ledger) Apply(mutations ...Mutation) error {
	staged := make(map[common.Address]*uint256.Int)
	get := func(a common.Address) *uint256.Int {
		if bal, ok := staged[a]; ok {
			return bal
		}
		bal := l.BalanceOf(a)
		staged[a] = bal
		return bal
	}
	for i, m := range mutations {
		if m.From == (common.Address{}) || m.To == (common.Address{}) {
			return fmt.Errorf("%w: mutation %d touches the zero address", constants.ErrInvalidArgument, i)
		}
		if m.Amount == nil {
			return fmt.Errorf("%w: mutation %d has no amount", constants.ErrInvalidArgument, i)
		}
		src := get(m.From)
		if src.Lt(m.Amount) {
			return fmt.Errorf("%w: %s holds %s, needs %s",
				constants.ErrInsufficientBalance, m.From.Hex(), src.Dec(), m.Amount.Dec())
		}
		src.Sub(src, m.Amount)
		dst := get(m.To)
		dst.Add(dst, m.Amount)
	}
	for a, bal := range staged {
		if bal.IsZero() {
			delete(l.balances, a)
			continue
		}
		l.balances[a] = bal
	}
	return nil
}

// Sum adds up every balance. It equals TotalSupply after Mint.
func (l *Ledger) Sum() *uint256.Int {
	sum := new(uint256.Int)
	for _, bal := range l.balances {
		sum.Add(sum, bal)
	}
	return sum
}

// Holders returns every account with a non-zero balance, sorted by address.
func (l *Ledger) Holders() []common.Address {
	holders := make([]common.Address, 0, len(l.balances))
	for a := range l.balances {
		holders = append(holders, a)
	}
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Cmp(holders[j]) < 0
	})
	return holders
}
