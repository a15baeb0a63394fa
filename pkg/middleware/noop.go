package middleware

import (
	"context"

	"github.com/rishi95122/helix-core/pkg/common"
)

//goland:noinspection ALL
var (
	NoopSnapshotHdl  = func(context.Context, common.OrderbookSnapshot) {}
	NoopUpdateHdl    = func(context.Context, []common.OrderbookUpdate) {}
	NoopBankBalHdl   = func(context.Context, common.BankBalance) {}
	NoopSubaccBalHdl = func(context.Context, common.SubaccountBalance) {}
	NoopPositionHdl  = func(context.Context, common.Position) {}
	NoopMarkPriceHdl = func(context.Context, common.MarkPrice) {}
)
