// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/token"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyName           = "name"
	KeySymbol         = "symbol"
	KeyTotalSupply    = "total_supply"
	KeyInitializer    = "initializer"
	KeySelf           = "self"
	KeyFeeRecipient   = "fee_recipient"
	KeyBuyFeeBp       = "buy_fee_bp"
	KeyLaunchBuyFeeBp = "launch_buy_fee_bp"
	KeyLaunchWindow   = "launch_window"
	KeyRounding       = "rounding"
	KeyFeeTiers       = "fee_tiers"
	KeyRPC            = "rpc"
	KeyFactory        = "factory"
	KeyLogLevel       = "log_level"
)

type Config struct {
	Name           string        `mapstructure:"name"`
	Symbol         string        `mapstructure:"symbol"`
	TotalSupply    string        `mapstructure:"total_supply"`
	Initializer    string        `mapstructure:"initializer"`
	Self           string        `mapstructure:"self"`
	FeeRecipient   string        `mapstructure:"fee_recipient"`
	BuyFeeBp       uint64        `mapstructure:"buy_fee_bp"`
	LaunchBuyFeeBp uint64        `mapstructure:"launch_buy_fee_bp"`
	LaunchWindow   time.Duration `mapstructure:"launch_window"`
	Rounding       string        `mapstructure:"rounding"`
	FeeTiers       []uint32      `mapstructure:"fee_tiers"`
	RPC            string        `mapstructure:"rpc"`
	Factory        string        `mapstructure:"factory"`
	LogLevel       string        `mapstructure:"log_level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyName, constants.TokenName)
	v.SetDefault(KeySymbol, constants.TokenSymbol)
	v.SetDefault(KeyTotalSupply, uint256.NewInt(constants.TotalSupplyUnits).Dec())
	// empty keys still need registering so AutomaticEnv can fill them
	v.SetDefault(KeyInitializer, "")
	v.SetDefault(KeySelf, "")
	v.SetDefault(KeyFeeRecipient, "")
	v.SetDefault(KeyRPC, "")
	v.SetDefault(KeyFactory, "")
	v.SetDefault(KeyBuyFeeBp, constants.DefaultBuyFeeBp)
	v.SetDefault(KeyLaunchBuyFeeBp, constants.DefaultLaunchBuyFeeBp)
	v.SetDefault(KeyLaunchWindow, constants.DefaultLaunchWindow)
	v.SetDefault(KeyRounding, policy.RoundCeil.String())
	v.SetDefault(KeyFeeTiers, constants.DefaultFeeTiers)
	v.SetDefault(KeyLogLevel, "info")
}

// New returns a viper instance with defaults set and TOKENGATE_* env
// variables bound.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed decoding config: %w", err)
	}
	for _, tier := range c.FeeTiers {
		if tier > constants.MaxFeeTier {
			return nil, fmt.Errorf("%w: %s: %d exceeds %d", constants.ErrInvalidArgument, KeyFeeTiers, tier, constants.MaxFeeTier)
		}
	}
	return &c, nil
}

// ParseAddress parses a hex account, allowing the empty string to mean the
// zero address.
func ParseAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s %q is not a hex address", constants.ErrInvalidArgument, field, s)
	}
	return common.HexToAddress(s), nil
}

// TokenParams turns the config into token construction params.
func (c *Config) TokenParams() (token.Params, error) {
	initializer, err := ParseAddress(KeyInitializer, c.Initializer)
	if err != nil {
		return token.Params{}, err
	}
	if initializer == (common.Address{}) {
		return token.Params{}, fmt.Errorf("%w: %s is required", constants.ErrInvalidArgument, KeyInitializer)
	}
	self, err := ParseAddress(KeySelf, c.Self)
	if err != nil {
		return token.Params{}, err
	}
	feeRecipient, err := ParseAddress(KeyFeeRecipient, c.FeeRecipient)
	if err != nil {
		return token.Params{}, err
	}
	rounding, err := policy.ParseRoundingMode(c.Rounding)
	if err != nil {
		return token.Params{}, err
	}
	p := token.DefaultParams(initializer, self)
	if c.TotalSupply != "" {
		supply, err := uint256.FromDecimal(c.TotalSupply)
		if err != nil {
			return token.Params{}, fmt.Errorf("%w: %s: %v", constants.ErrInvalidArgument, KeyTotalSupply, err)
		}
		p.TotalSupply = supply
	}
	if c.Name != "" {
		p.Name = c.Name
	}
	if c.Symbol != "" {
		p.Symbol = c.Symbol
	}
	if feeRecipient != (common.Address{}) {
		p.FeeRecipient = feeRecipient
	}
	p.BuyFeeBp = c.BuyFeeBp
	p.LaunchBuyFeeBp = c.LaunchBuyFeeBp
	p.LaunchWindow = c.LaunchWindow
	p.Rounding = rounding
	return p, nil
}
