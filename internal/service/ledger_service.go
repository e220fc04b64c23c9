package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

// LedgerService инкапсулирует все операции над балансами и заявками на возврат.
type LedgerService struct {
	uow         uow.UOW
	accountRepo AccountRepository
	refundRepo  RefundRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](
		u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	refundRepo, refundRepoErr := uow.GetRepositoryAs[RefundRepository](
		u, uow.RepositoryName(repoargs.RefundRepoName))
	if refundRepoErr != nil {
		return nil, refundRepoErr
	}
	return &LedgerService{
		uow:         u,
		accountRepo: accountRepo,
		refundRepo:  refundRepo,
	}, nil
}

// ResolveAccount находит аккаунт по chatID, при первом обращении создает его
// с нулевым балансом. И команда /balance и кнопка balance проходят через этот
// метод, поэтому семантика создания у них общая.
func (s *LedgerService) ResolveAccount(ctx context.Context, chatID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetOrCreate(ctx, chatID)
	if err != nil {
		return nil, errors.Wrap(err, "resolving account")
	}
	return account, nil
}

type AdjustBalanceArgs struct {
	ChatID  int64
	ActorID int64
	Delta   decimal.Decimal
}

// AdjustBalance атомарно изменяет баланс аккаунта и в той же транзакции пишет
// запись аудита. Инкремент выполняется на стороне базы, так что конкурентные
// корректировки одного аккаунта складываются без потерянных обновлений.
func (s *LedgerService) AdjustBalance(ctx context.Context, args AdjustBalanceArgs) (*domain.Account, error) {
	var account *domain.Account
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](
			tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		blRepo, blRepoErr := uow.GetAs[BalanceTransactionRepository](
			tx, uow.RepositoryName(repoargs.BalanceTransactionRepoName))
		if blRepoErr != nil {
			return blRepoErr //nolint:wrapcheck
		}

		var adjustErr error
		account, adjustErr = accountRepo.AdjustBalance(c, args.ChatID, args.Delta)
		if adjustErr != nil {
			return adjustErr //nolint:wrapcheck
		}

		_, createErr := blRepo.Create(c, repoargs.BalanceTransactionCreate{
			ChatID:  args.ChatID,
			ActorID: args.ActorID,
			Amount:  args.Delta,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, errors.Wrap(txErr, "adjusting balance")
	}
	return account, nil
}

// PendingRefunds возвращает заявки на возврат в статусе pending. Перевод
// заявки в resolved делается вне бота, здесь только чтение.
func (s *LedgerService) PendingRefunds(ctx context.Context) ([]domain.RefundRequest, error) {
	requests, err := s.refundRepo.ListPending(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing pending refunds")
	}
	return requests, nil
}

// AllChatIDs возвращает идентификаторы всех известных аккаунтов для рассылки.
func (s *LedgerService) AllChatIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.accountRepo.ListChatIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing chat ids")
	}
	return ids, nil
}
