// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"

	"github.com/holiman/uint256"
)

type Kind int

const (
	PassThrough Kind = iota
	Reject
	SplitWithFee
)

func (k Kind) String() string {
	switch k {
	case PassThrough:
		return "pass-through"
	case Reject:
		return "reject"
	case SplitWithFee:
		return "split-with-fee"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the decision for a single transfer. Reason is set for Reject,
// Fee for SplitWithFee. Rule names the rule that settled the decision.
type Outcome struct {
	Kind   Kind
	Reason error
	Fee    *uint256.Int
	Rule   string
}

func pass(rule string) Outcome {
	return Outcome{Kind: PassThrough, Rule: rule}
}

func reject(rule string, reason error) Outcome {
	return Outcome{Kind: Reject, Reason: reason, Rule: rule}
}

// Err returns the rejection reason, or nil if the transfer may proceed.
func (o Outcome) Err() error {
	if o.Kind == Reject {
		return o.Reason
	}
	return nil
}

// FeeAmount returns the fee, zero when there is none.
func (o Outcome) FeeAmount() *uint256.Int {
	if o.Kind != SplitWithFee || o.Fee == nil {
		return new(uint256.Int)
	}
	return o.Fee.Clone()
}

func (o Outcome) String() string {
	switch o.Kind {
	case Reject:
		return fmt.Sprintf("%s(%v) by %s", o.Kind, o.Reason, o.Rule)
	case SplitWithFee:
		return fmt.Sprintf("%s(%s) by %s", o.Kind, o.Fee.Dec(), o.Rule)
	default:
		return fmt.Sprintf("%s by %s", o.Kind, o.Rule)
	}
}
