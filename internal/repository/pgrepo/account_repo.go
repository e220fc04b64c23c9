package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetOrCreate возвращает аккаунт с нулевым балансом, создавая его при первом
// обращении. Делается одним upsert запросом, чтобы конкурентные вызовы не
// создали две записи для одного chatID.
func (a *AccountRepository) GetOrCreate(ctx context.Context, chatID int64) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		INSERT INTO accounts (chat_id)
		VALUES ($1)
		ON CONFLICT (chat_id) DO UPDATE SET updated_at = now()
		RETURNING chat_id, balance, created_at, updated_at`, chatID)

	var account domain.Account
	if err := row.Scan(&account.ChatID, &account.Balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return nil, convertErr(err, "get or create account %d", chatID)
	}
	return &account, nil
}

// AdjustBalance атомарно изменяет баланс на delta (положительная - пополнение,
// отрицательная - списание). Отсутствующий аккаунт создается сразу с итоговым
// балансом. Нижней границы нет, баланс может уйти в минус.
func (a *AccountRepository) AdjustBalance(
	ctx context.Context,
	chatID int64,
	delta decimal.Decimal,
) (*domain.Account, error) {
	row := a.db.QueryRow(ctx, `
		INSERT INTO accounts (chat_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE
			SET balance = accounts.balance + EXCLUDED.balance, updated_at = now()
		RETURNING chat_id, balance, created_at, updated_at`, chatID, delta)

	var account domain.Account
	if err := row.Scan(&account.ChatID, &account.Balance, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return nil, convertErr(err, "adjust balance of account %d", chatID)
	}
	return &account, nil
}

// ListChatIDs возвращает идентификаторы всех известных аккаунтов.
func (a *AccountRepository) ListChatIDs(ctx context.Context) ([]int64, error) {
	rows, err := a.db.Query(ctx, `SELECT chat_id FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, convertErr(err, "listing account chat ids")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, convertErr(scanErr, "scanning account chat id")
		}
		ids = append(ids, id)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing account chat ids")
	}
	return ids, nil
}
