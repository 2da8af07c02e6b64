// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tokengate/internal/testutils"
	"github.com/luxfi/tokengate/pkg/constants"
	"github.com/luxfi/tokengate/pkg/policy"
	"github.com/luxfi/tokengate/pkg/token"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestTokenLaunch(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Token launch suite")
}

var _ = ginkgo.Describe("[Token launch]", func() {
	var (
		acc testutils.Accounts
		tok *token.Token
	)

	start := policy.BlockContext{Height: 500, Time: 1_000_000}
	block := func(height, time uint64) policy.BlockContext {
		return policy.BlockContext{Height: height, Time: time}
	}

	ginkgo.BeforeEach(func() {
		acc = testutils.NewAccounts()
		p := token.DefaultParams(acc.Owner, acc.Self)
		p.FeeRecipient = acc.Treasury
		var err error
		tok, err = token.New(p)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(tok.Admin().SetPair(acc.Owner, acc.Pair, true)).Should(gomega.Succeed())
		_, err = tok.Transfer(acc.Owner, acc.Pair, testutils.Units(1_000_000_000), block(1, 1))
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.It("mints the whole supply to the initializer", func() {
		fresh, err := token.New(token.DefaultParams(acc.Owner, acc.Self))
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(fresh.BalanceOf(acc.Owner).Dec()).Should(gomega.Equal("500000000000000000"))
	})

	ginkgo.It("only lets pair transfers through before activation", func() {
		_, err := tok.Transfer(acc.Owner, acc.Alice, uint256.NewInt(100), block(2, 2))
		gomega.Expect(err).Should(gomega.BeNil())
		_, err = tok.Transfer(acc.Alice, acc.Bob, uint256.NewInt(100), block(2, 2))
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrTradingInactive))

		out, err := tok.Transfer(acc.Pair, acc.Bob, uint256.NewInt(100), block(2, 2))
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out.Kind).Should(gomega.Equal(policy.PassThrough))
	})

	ginkgo.It("caps buys during launch protection", func() {
		gomega.Expect(tok.Admin().ActivateTrading(acc.Owner, start)).Should(gomega.Succeed())
		amount := new(uint256.Int).Div(tok.Config().MaxTx(), uint256.NewInt(4))

		_, err := tok.Transfer(acc.Pair, acc.Alice, amount, start)
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrLaunchProtection))

		out, err := tok.Transfer(acc.Pair, acc.Alice, amount, block(start.Height+9, start.Time+30))
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out.Kind).Should(gomega.Equal(policy.SplitWithFee))
	})

	ginkgo.It("splits the launch fee to the fee recipient", func() {
		gomega.Expect(tok.Admin().ActivateTrading(acc.Owner, start)).Should(gomega.Succeed())

		out, err := tok.Transfer(acc.Pair, acc.Alice, uint256.NewInt(1_000), block(start.Height+20, start.Time+900))
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(out.FeeAmount().Uint64()).Should(gomega.Equal(uint64(200)))
		gomega.Expect(tok.BalanceOf(acc.Alice).Uint64()).Should(gomega.Equal(uint64(800)))
		gomega.Expect(tok.BalanceOf(acc.Treasury).Uint64()).Should(gomega.Equal(uint64(200)))
	})

	ginkgo.It("only allows renouncing after launch", func() {
		gomega.Expect(tok.Ownership().RenounceOwnership(acc.Owner)).Should(gomega.MatchError(constants.ErrNotLaunched))
		gomega.Expect(tok.Admin().ActivateTrading(acc.Owner, start)).Should(gomega.Succeed())
		gomega.Expect(tok.Ownership().RenounceOwnership(acc.Owner)).Should(gomega.Succeed())
		gomega.Expect(tok.Ownership().Owner()).Should(gomega.Equal(common.Address{}))
		gomega.Expect(tok.Admin().SetFeesEnabled(acc.Owner, false)).Should(gomega.MatchError(constants.ErrUnauthorized))
	})
})
