package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ChatID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Balance   decimal.Decimal
}

type RefundRequest struct {
	ID        int64
	CreatedAt time.Time
	ChatID    int64
	Amount    decimal.Decimal
	Reason    string
	Status    RefundStatusType
}

type BalanceTransaction struct {
	ID        int64
	CreatedAt time.Time
	ChatID    int64
	ActorID   int64
	Amount    decimal.Decimal
}
