package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/portfolio"
	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// accountView accumulates the latest balance, position and mark price feed
// state and rebuilds the derived portfolio on every change. All handlers run
// on the router goroutine, so no locking is needed.
type accountView struct {
	logger *zap.Logger

	defaultSubaccountID string
	tokens              []common.Token

	bankBalances       map[string]fixed.Point
	subaccountBalances map[string][]common.SubaccountBalance
	positions          map[string]common.Position
	markPrices         map[string]fixed.Point

	latest map[string][]common.AccountBalance
}

func newAccountView(logger *zap.Logger, address string, markets []common.Market) *accountView {
	seen := make(map[string]struct{})
	var tokens []common.Token
	for _, market := range markets {
		for _, token := range []common.Token{market.BaseToken, market.QuoteToken} {
			if _, ok := seen[token.Denom]; ok {
				continue
			}
			seen[token.Denom] = struct{}{}
			tokens = append(tokens, token)
		}
	}

	return &accountView{
		logger:              logger,
		defaultSubaccountID: utility.DefaultSubaccountID(address),
		tokens:              tokens,
		bankBalances:        make(map[string]fixed.Point),
		subaccountBalances:  make(map[string][]common.SubaccountBalance),
		positions:           make(map[string]common.Position),
		markPrices:          make(map[string]fixed.Point),
	}
}

func (v *accountView) OnBankBalance(_ context.Context, balance common.BankBalance) {
	v.bankBalances[balance.Denom] = balance.Amount
	v.recompute()
}

func (v *accountView) OnSubaccountBalance(_ context.Context, balance common.SubaccountBalance) {
	balances := v.subaccountBalances[balance.SubaccountID]
	replaced := false
	for i, existing := range balances {
		if existing.Denom == balance.Denom {
			balances[i] = balance
			replaced = true
			break
		}
	}
	if !replaced {
		balances = append(balances, balance)
	}
	v.subaccountBalances[balance.SubaccountID] = balances
	v.recompute()
}

func (v *accountView) OnPosition(_ context.Context, position common.Position) {
	key := position.MarketID + "/" + position.SubaccountID
	if position.Quantity.IsZero() {
		delete(v.positions, key)
	} else {
		v.positions[key] = position
	}
	v.recompute()
}

func (v *accountView) OnMarkPrice(_ context.Context, markPrice common.MarkPrice) {
	v.markPrices[markPrice.MarketID] = markPrice.Price
	v.recompute()
}

func (v *accountView) Balances(subaccountID string) []common.AccountBalance {
	return v.latest[subaccountID]
}

func (v *accountView) recompute() {
	positions := make([]common.Position, 0, len(v.positions))
	for _, position := range v.positions {
		positions = append(positions, position)
	}

	v.latest = portfolio.PortfolioBalances(portfolio.PortfolioInputs{
		DefaultSubaccountID: v.defaultSubaccountID,
		Tokens:              v.tokens,
		BankBalances:        v.bankBalances,
		SubaccountBalances:  v.subaccountBalances,
		Positions:           positions,
		MarkPrices:          v.markPrices,
	})

	for subaccountID, balances := range v.latest {
		for _, balance := range balances {
			v.logger.Debug("account balance",
				zap.String("subaccount_id", subaccountID),
				zap.String("denom", balance.Denom),
				zap.String("total", balance.AccountTotalBalance.String()),
				zap.String("unrealized_pnl", balance.UnrealizedPnl.String()))
		}
	}
}
