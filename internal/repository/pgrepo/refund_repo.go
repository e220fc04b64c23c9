package pgrepo

import (
	"context"

	"github.com/fsdevblog/escrow-bot/internal/domain"
	"github.com/fsdevblog/escrow-bot/pkg/uow"
)

type RefundRepository struct {
	db uow.DBTX
}

func NewRefundRepository(db uow.DBTX) *RefundRepository {
	return &RefundRepository{db: db}
}

// ListPending возвращает все необработанные заявки на возврат. Порядок по
// created_at, чтобы выдача была стабильной.
//
// Записи создаются и закрываются вне бота (заявки заводит сервис поддержки),
// поэтому других операций у репозитория нет.
func (r *RefundRepository) ListPending(ctx context.Context) ([]domain.RefundRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, chat_id, amount, COALESCE(reason, ''), status, created_at
		FROM refund_requests
		WHERE status = $1
		ORDER BY created_at`, domain.RefundStatusPending)
	if err != nil {
		return nil, convertErr(err, "listing pending refund requests")
	}
	defer rows.Close()

	var requests []domain.RefundRequest
	for rows.Next() {
		var request domain.RefundRequest
		scanErr := rows.Scan(
			&request.ID,
			&request.ChatID,
			&request.Amount,
			&request.Reason,
			&request.Status,
			&request.CreatedAt,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning refund request")
		}
		requests = append(requests, request)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing pending refund requests")
	}
	return requests, nil
}
