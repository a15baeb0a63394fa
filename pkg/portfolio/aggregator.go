package portfolio

import (
	"strings"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// Inputs is everything needed to derive the balances of one subaccount. The
// aggregator is a pure projection over these inputs: no state, no ordering
// requirements, safe to recompute on every feed event.
type Inputs struct {
	SubaccountID        string
	DefaultSubaccountID string

	Tokens             []common.Token
	BankBalances       map[string]fixed.Point
	SubaccountBalances []common.SubaccountBalance
	Positions          []common.Position
	MarkPrices         map[string]fixed.Point
}

// PortfolioInputs covers every subaccount of a wallet at once.
type PortfolioInputs struct {
	DefaultSubaccountID string

	Tokens             []common.Token
	BankBalances       map[string]fixed.Point
	SubaccountBalances map[string][]common.SubaccountBalance
	Positions          []common.Position
	MarkPrices         map[string]fixed.Point
}

// Balances rebuilds one AccountBalance per tradeable token. The default
// trading account is bank funded: its whole subaccount balance is considered
// in-order and its margin comes from the bank. Isolated subaccounts margin
// from their own available balance instead.
func Balances(in Inputs) []common.AccountBalance {
	isDefaultTradingAccount := in.SubaccountID == in.DefaultSubaccountID

	balances := make([]common.AccountBalance, 0, len(in.Tokens))
	for _, token := range in.Tokens {
		bankBalance := fixed.Zero
		if amount, ok := in.BankBalances[token.Denom]; ok {
			bankBalance = amount
		}

		subaccountAvailableBalance := fixed.Zero
		subaccountTotalBalance := fixed.Zero
		for _, balance := range in.SubaccountBalances {
			if balance.SubaccountID == in.SubaccountID && balance.Denom == token.Denom {
				subaccountAvailableBalance = balance.AvailableBalance
				subaccountTotalBalance = balance.TotalBalance
				break
			}
		}

		inOrderBalance := subaccountTotalBalance
		availableMargin := bankBalance
		if !isDefaultTradingAccount {
			inOrderBalance = subaccountTotalBalance.Sub(subaccountAvailableBalance)
			availableMargin = subaccountAvailableBalance
		}

		unrealizedPnl := unrealizedPnlAndMargin(in.SubaccountID, token, in.Positions, in.MarkPrices)

		accountTotalBalance := subaccountTotalBalance.Add(unrealizedPnl)
		if isDefaultTradingAccount {
			accountTotalBalance = accountTotalBalance.Add(bankBalance)
		}

		displayedBankBalance := fixed.Zero
		displayedAvailableBalance := subaccountAvailableBalance
		if isDefaultTradingAccount {
			displayedBankBalance = bankBalance
			displayedAvailableBalance = fixed.Zero
		}

		balances = append(balances, common.AccountBalance{
			SubaccountID:             in.SubaccountID,
			Denom:                    token.Denom,
			Token:                    token,
			BankBalance:              displayedBankBalance,
			AvailableBalance:         displayedAvailableBalance,
			TotalBalance:             subaccountTotalBalance,
			InOrderBalance:           inOrderBalance,
			AvailableMargin:          availableMargin,
			UnrealizedPnl:            unrealizedPnl,
			AccountTotalBalance:      accountTotalBalance,
			AccountTotalBalanceInUsd: accountTotalBalance.Mul(token.UsdPrice),
		})
	}

	return balances
}

// PortfolioBalances projects every subaccount, keyed by subaccount id.
func PortfolioBalances(in PortfolioInputs) map[string][]common.AccountBalance {
	portfolio := make(map[string][]common.AccountBalance, len(in.SubaccountBalances))
	for subaccountID, balances := range in.SubaccountBalances {
		portfolio[subaccountID] = Balances(Inputs{
			SubaccountID:        subaccountID,
			DefaultSubaccountID: in.DefaultSubaccountID,
			Tokens:              in.Tokens,
			BankBalances:        in.BankBalances,
			SubaccountBalances:  balances,
			Positions:           in.Positions,
			MarkPrices:          in.MarkPrices,
		})
	}
	return portfolio
}

// unrealizedPnlAndMargin folds the subaccount's open positions quoted in the
// token into margin plus mark-to-market PnL. The live mark price is preferred
// when positive; otherwise the position's own stored mark price backstops it.
func unrealizedPnlAndMargin(subaccountID string, token common.Token, positions []common.Position, markPrices map[string]fixed.Point) fixed.Point {
	total := fixed.Zero
	for _, position := range positions {
		if position.SubaccountID != subaccountID || position.Denom != token.Denom {
			continue
		}

		markPrice := position.MarkPrice
		if live, ok := markPrices[position.MarketID]; ok {
			liveInWei := fixed.ToWei(live, token.Decimals)
			if liveInWei.IsPositive() {
				markPrice = liveInWei
			}
		}

		pnl := position.Quantity.Mul(markPrice.Sub(position.EntryPrice))
		if position.Direction == common.DirectionShort {
			pnl = pnl.Neg()
		}

		total = total.Add(position.Margin).Add(pnl)
	}
	return total
}

// AggregateByDenoms folds balances whose denoms belong to one equivalence
// class (stablecoin variants and the like) into a single synthetic balance.
// The second return is false when nothing matched.
func AggregateByDenoms(balances []common.AccountBalance, denoms []string) (common.AccountBalance, bool) {
	var filtered []common.AccountBalance
	for _, balance := range balances {
		for _, denom := range denoms {
			if balance.Denom == denom {
				filtered = append(filtered, balance)
				break
			}
		}
	}

	if len(filtered) == 0 {
		return common.AccountBalance{}, false
	}

	aggregated := filtered[0]
	for _, balance := range filtered[1:] {
		aggregated.BankBalance = aggregated.BankBalance.Add(balance.BankBalance)
		aggregated.AvailableBalance = aggregated.AvailableBalance.Add(balance.AvailableBalance)
		aggregated.TotalBalance = aggregated.TotalBalance.Add(balance.TotalBalance)
		aggregated.InOrderBalance = aggregated.InOrderBalance.Add(balance.InOrderBalance)
		aggregated.AvailableMargin = aggregated.AvailableMargin.Add(balance.AvailableMargin)
		aggregated.UnrealizedPnl = aggregated.UnrealizedPnl.Add(balance.UnrealizedPnl)
		aggregated.AccountTotalBalance = aggregated.AccountTotalBalance.Add(balance.AccountTotalBalance)
		aggregated.AccountTotalBalanceInUsd = aggregated.AccountTotalBalanceInUsd.Add(balance.AccountTotalBalanceInUsd)
	}
	aggregated.Denom = strings.Join(denoms, "-")

	return aggregated, true
}

// ToBase projects wei-scale balances onto each token's display scale.
func ToBase(balances []common.AccountBalance) []common.AccountBalance {
	projected := make([]common.AccountBalance, 0, len(balances))
	for _, balance := range balances {
		decimals := balance.Token.Decimals
		balance.BankBalance = fixed.ToBase(balance.BankBalance, decimals)
		balance.AvailableBalance = fixed.ToBase(balance.AvailableBalance, decimals)
		balance.TotalBalance = fixed.ToBase(balance.TotalBalance, decimals)
		balance.InOrderBalance = fixed.ToBase(balance.InOrderBalance, decimals)
		balance.AvailableMargin = fixed.ToBase(balance.AvailableMargin, decimals)
		balance.UnrealizedPnl = fixed.ToBase(balance.UnrealizedPnl, decimals)
		balance.AccountTotalBalance = fixed.ToBase(balance.AccountTotalBalance, decimals)
		balance.AccountTotalBalanceInUsd = fixed.ToBase(balance.AccountTotalBalanceInUsd, decimals)
		projected = append(projected, balance)
	}
	return projected
}
