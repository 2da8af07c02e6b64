// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Step operations
const (
	OpTransfer          = "transfer"
	OpActivate          = "activate"
	OpSetPair           = "set-pair"
	OpSetRouter         = "set-router"
	OpSetLimits         = "set-limits"
	OpSetLaunchFee      = "set-launch-fee"
	OpSetFees           = "set-fees"
	OpSetAntiSnipe      = "set-anti-snipe"
	OpSetFeeRecipient   = "set-fee-recipient"
	OpTransferOwnership = "transfer-ownership"
	OpRenounce          = "renounce"
	OpDiscover          = "discover"
	OpExpectBalance     = "expect-balance"
)

// Scenario is a scripted sequence of operations against one token.
type Scenario struct {
	Name     string            `yaml:"name"`
	Accounts map[string]string `yaml:"accounts"`
	// Initializer and Self name the accounts the token is built with. When
	// empty the configured values apply.
	Initializer string `yaml:"initializer,omitempty"`
	Self        string `yaml:"self,omitempty"`
	Pools       []Pool `yaml:"pools"`
	Steps       []Step `yaml:"steps"`
}

// Pool seeds the in-memory registry used by discover steps.
type Pool struct {
	Counter string `yaml:"counter"`
	Tier    uint32 `yaml:"tier"`
	Address string `yaml:"address"`
}

type Step struct {
	Op     string `yaml:"op"`
	Caller string `yaml:"caller,omitempty"`
	From   string `yaml:"from,omitempty"`
	To     string `yaml:"to,omitempty"`
	// Account is the subject of set-pair, set-router, set-fee-recipient,
	// transfer-ownership, discover (counter asset) and expect-balance.
	Account   string   `yaml:"account,omitempty"`
	Amount    string   `yaml:"amount,omitempty"`
	MaxTx     string   `yaml:"max_tx,omitempty"`
	MaxWallet string   `yaml:"max_wallet,omitempty"`
	Rate      uint64   `yaml:"rate,omitempty"`
	Enabled   *bool    `yaml:"enabled,omitempty"`
	Tiers     []uint32 `yaml:"tiers,omitempty"`
	Height    uint64   `yaml:"height,omitempty"`
	Time      uint64   `yaml:"time,omitempty"`

	// Expect names the error kind the step must fail with; empty means it
	// must succeed.
	Expect    string `yaml:"expect,omitempty"`
	ExpectFee string `yaml:"expect_fee,omitempty"`
}

var errorKinds = map[string]error{
	"unauthorized":        constants.ErrUnauthorized,
	"invalidargument":     constants.ErrInvalidArgument,
	"alreadyactive":       constants.ErrAlreadyActive,
	"notlaunched":         constants.ErrNotLaunched,
	"tradinginactive":     constants.ErrTradingInactive,
	"onebuyperblock":      constants.ErrOneBuyPerBlock,
	"exceedsmaxtx":        constants.ErrExceedsMaxTx,
	"exceedsmaxwallet":    constants.ErrExceedsMaxWallet,
	"launchprotection":    constants.ErrLaunchProtection,
	"insufficientbalance": constants.ErrInsufficientBalance,
}

// ErrorKind maps a name such as "ExceedsMaxTx" or "exceeds-max-tx" to its
// sentinel error.
func ErrorKind(name string) (error, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	err, ok := errorKinds[key]
	return err, ok
}

// ErrorKinds lists the accepted error kind names.
func ErrorKinds() []string {
	names := make([]string, 0, len(errorKinds))
	for k := range errorKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed parsing scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	for name, hex := range s.Accounts {
		if !common.IsHexAddress(hex) {
			return fmt.Errorf("account %q: %q is not a hex address", name, hex)
		}
	}
	for _, name := range []string{s.Initializer, s.Self} {
		if _, err := s.Resolve(name); err != nil {
			return err
		}
	}
	for i, st := range s.Steps {
		if _, ok := handlers[st.Op]; !ok {
			return fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		if st.Expect != "" {
			if _, ok := ErrorKind(st.Expect); !ok {
				return fmt.Errorf("step %d: unknown error kind %q", i, st.Expect)
			}
		}
	}
	return nil
}

// Resolve turns an account alias or hex string into an address. The empty
// string and "zero" are the zero address.
func (s *Scenario) Resolve(name string) (common.Address, error) {
	if name == "" || name == "zero" {
		return common.Address{}, nil
	}
	if hex, ok := s.Accounts[name]; ok {
		return common.HexToAddress(hex), nil
	}
	if common.IsHexAddress(name) {
		return common.HexToAddress(name), nil
	}
	return common.Address{}, fmt.Errorf("unknown account %q", name)
}

// Alias returns the scenario name for a, or its hex form.
func (s *Scenario) Alias(a common.Address) string {
	names := make([]string, 0, len(s.Accounts))
	for name := range s.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if common.HexToAddress(s.Accounts[name]) == a {
			return name
		}
	}
	return a.Hex()
}
