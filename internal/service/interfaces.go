package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AccountRepository interface {
	GetOrCreate(ctx context.Context, chatID int64) (*domain.Account, error)
	AdjustBalance(ctx context.Context, chatID int64, delta decimal.Decimal) (*domain.Account, error)
	ListChatIDs(ctx context.Context) ([]int64, error)
}

type RefundRepository interface {
	ListPending(ctx context.Context) ([]domain.RefundRequest, error)
}

type BalanceTransactionRepository interface {
	Create(ctx context.Context, transaction repoargs.BalanceTransactionCreate) (*domain.BalanceTransaction, error)
}
