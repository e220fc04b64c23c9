package bot

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/internal/service"
)

// Sender узкий срез tgbotapi.BotAPI, чтобы хендлеры можно было тестировать
// без живого подключения к Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type LedgerServicer interface {
	ResolveAccount(ctx context.Context, chatID int64) (*domain.Account, error)
	AdjustBalance(ctx context.Context, args service.AdjustBalanceArgs) (*domain.Account, error)
	PendingRefunds(ctx context.Context) ([]domain.RefundRequest, error)
}

type AccessChecker interface {
	IsAdmin(chatID int64) bool
}
