package common

import (
	"time"

	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// BankBalance is a wallet-level holding of one token, wei scale.
type BankBalance struct {
	Denom  string      `json:"denom"`
	Amount fixed.Point `json:"amount"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}

// SubaccountBalance is one token held under a subaccount, wei scale.
type SubaccountBalance struct {
	SubaccountID     string      `json:"subaccount_id"`
	Denom            string      `json:"denom"`
	AvailableBalance fixed.Point `json:"available_balance"`
	TotalBalance     fixed.Point `json:"total_balance"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}

// AccountBalance is the fully derived per (subaccount, token) view combining
// bank funds, subaccount funds and unrealized position PnL. It is always
// rebuilt whole from its sources, never mutated field by field. Monetary
// fields stay wei scale until projected for display.
type AccountBalance struct {
	SubaccountID string `json:"subaccount_id"`
	Denom        string `json:"denom"`
	Token        Token  `json:"token"`

	BankBalance              fixed.Point `json:"bank_balance"`
	AvailableBalance         fixed.Point `json:"available_balance"`
	TotalBalance             fixed.Point `json:"total_balance"`
	InOrderBalance           fixed.Point `json:"in_order_balance"`
	AvailableMargin          fixed.Point `json:"available_margin"`
	UnrealizedPnl            fixed.Point `json:"unrealized_pnl"`
	AccountTotalBalance      fixed.Point `json:"account_total_balance"`
	AccountTotalBalanceInUsd fixed.Point `json:"account_total_balance_in_usd"`
}
