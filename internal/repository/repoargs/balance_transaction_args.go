package repoargs

import (
	"github.com/shopspring/decimal"
)

type BalanceTransactionCreate struct {
	ChatID  int64
	ActorID int64
	Amount  decimal.Decimal
}
