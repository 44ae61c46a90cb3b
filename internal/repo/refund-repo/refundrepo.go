package refundrepo

import (
	"context"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID int) ([]domain.Refund, error) {
	query := `
        SELECT id, order_id, amount, status, is_automatic, type, created_at
        FROM refunds
        WHERE order_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		zap.L().Error("can't get refunds", zap.Int("order_id", orderID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		var refund domain.Refund
		err := rows.Scan(
			&refund.ID, &refund.OrderID, &refund.Amount, &refund.Status,
			&refund.IsAutomatic, &refund.Type, &refund.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan refund", zap.Int("order_id", orderID), zap.Error(err))
			return nil, err
		}
		refunds = append(refunds, refund)
	}
	return refunds, rows.Err()
}
