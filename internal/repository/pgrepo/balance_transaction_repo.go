package pgrepo

import (
	"context"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

type BalanceTransactionRepository struct {
	db uow.DBTX
}

func NewBalanceTransactionRepository(db uow.DBTX) *BalanceTransactionRepository {
	return &BalanceTransactionRepository{db: db}
}

// Create пишет запись аудита об изменении баланса оператором.
func (b *BalanceTransactionRepository) Create(
	ctx context.Context,
	transaction repoargs.BalanceTransactionCreate,
) (*domain.BalanceTransaction, error) {
	row := b.db.QueryRow(ctx, `
		INSERT INTO balance_transactions (chat_id, actor_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, chat_id, actor_id, amount, created_at`,
		transaction.ChatID, transaction.ActorID, transaction.Amount)

	var created domain.BalanceTransaction
	err := row.Scan(&created.ID, &created.ChatID, &created.ActorID, &created.Amount, &created.CreatedAt)
	if err != nil {
		return nil, convertErr(err, "creating balance transaction for account %d", transaction.ChatID)
	}
	return &created, nil
}
