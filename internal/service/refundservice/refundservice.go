package refundservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/refund"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Order, error)
}

type RefundRepo interface {
	FindByOrderID(ctx context.Context, orderID int) ([]domain.Refund, error)
}

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("order belongs to another user")
)

type Service struct {
	orders  OrderRepo
	refunds RefundRepo
	engine  *refund.Engine
	clock   clock.Clock
}

func New(orders OrderRepo, refunds RefundRepo, engine *refund.Engine, clk clock.Clock) *Service {
	return &Service{
		orders:  orders,
		refunds: refunds,
		engine:  engine,
		clock:   clk,
	}
}

// EvaluateOrder reports how much of the user's order can be refunded right now.
func (s *Service) EvaluateOrder(ctx context.Context, userID, orderID int) (*refund.Verdict, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		zap.L().Info("refund evaluation for foreign order", zap.Int("order_id", orderID), zap.Int("user_id", userID))
		return nil, ErrNotOwner
	}

	refunds, err := s.refunds.FindByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get refunds", zap.Int("order_id", orderID), zap.Error(err))
		return nil, err
	}

	verdict := s.engine.Evaluate(*order, refunds, s.clock.Now())
	return &verdict, nil
}
