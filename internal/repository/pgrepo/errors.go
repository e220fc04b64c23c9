package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/escrow-bot/internal/domain"
)

const (
	uniqueViolationCode = "23505"
)

// convertErr преобразует ошибку к стандартному виду для слоя репозитория.
// Особенности:
//   - pgx.ErrNoRows превращается в domain.ErrRecordNotFound.
//   - Дубликаты ключей (uniqueViolationCode) превращаются в domain.ErrDuplicateKey.
//   - Ошибки соединения превращаются в domain.ErrStoreUnavailable, чтобы вызывающий
//     код не перепутал недоступность базы с нулевым балансом.
//   - Все остальные ошибки возвращаются как domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrStoreUnavailable

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if isUniqueViolationErr(pgErr) {
			errType = domain.ErrDuplicateKey
		} else {
			// база ответила - значит она доступна, но запрос не прошел.
			errType = domain.ErrUnknown
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

func isUniqueViolationErr(err *pgconn.PgError) bool {
	return err.Code == uniqueViolationCode
}
