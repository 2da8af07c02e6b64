// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"go.uber.org/zap"
)

type Kind string

const (
	PairSet              Kind = "pair-set"
	RouterSet            Kind = "router-set"
	LaunchBuyFeeChanged  Kind = "launch-buy-fee-changed"
	FeesToggled          Kind = "fees-toggled"
	AntiSnipeToggled     Kind = "anti-snipe-toggled"
	FeeRecipientChanged  Kind = "fee-recipient-changed"
	LimitsChanged        Kind = "limits-changed"
	TradingActivated     Kind = "trading-activated"
	OwnershipTransferred Kind = "ownership-transferred"
)

// Event is an audit notification for a configuration change. Account is the
// entity that changed, Value its new value rendered as text.
type Event struct {
	Kind     Kind
	Account  common.Address
	Previous common.Address
	Value    string
}

func (e Event) String() string {
	if e.Account == (common.Address{}) && e.Kind != OwnershipTransferred {
		return fmt.Sprintf("%s value=%s", e.Kind, e.Value)
	}
	return fmt.Sprintf("%s account=%s value=%s", e.Kind, e.Account.Hex(), e.Value)
}

// Sink receives emitted events.
type Sink interface {
	Emit(Event)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

// Recorder keeps every event in memory, in emission order.
type Recorder struct {
	events []Event
}

func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfKind returns the recorded events of kind k.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// LogSink writes events to a zap logger at info level.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Emit(e Event) {
	if s.Log == nil {
		return
	}
	fields := []zap.Field{zap.String("event", string(e.Kind))}
	if e.Account != (common.Address{}) || e.Kind == OwnershipTransferred {
		fields = append(fields, zap.String("account", e.Account.Hex()))
	}
	if e.Kind == OwnershipTransferred {
		fields = append(fields, zap.String("previous", e.Previous.Hex()))
	}
	if e.Value != "" {
		fields = append(fields, zap.String("value", e.Value))
	}
	s.Log.Info("config event", fields...)
}

type multi []Sink

func (m multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Multi fans each event out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
