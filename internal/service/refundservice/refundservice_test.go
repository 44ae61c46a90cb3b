package refundservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/refund"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var created = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockOrderRepo, *MockRefundRepo) {
	ctrl := gomock.NewController(t)
	orders := NewMockOrderRepo(ctrl)
	refunds := NewMockRefundRepo(ctrl)
	clk := clock.NewFakeClock(created.Add(10 * 24 * time.Hour))
	return New(orders, refunds, refund.New(refund.DefaultWindow), clk), orders, refunds
}

func order() *domain.Order {
	return &domain.Order{
		ID:           5,
		UserID:       1,
		Status:       domain.OrderStatusPaid,
		Type:         domain.OrderTypeNew,
		Price:        3000,
		CreatedAt:    created,
		ExpiresAt:    created.Add(30 * 24 * time.Hour),
		RefundStatus: domain.RefundStatusNone,
	}
}

func TestEvaluateOrder(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name            string
		userID          int
		prepareMock     func(orders *MockOrderRepo, refunds *MockRefundRepo)
		expectedVerdict *refund.Verdict
		expectedError   error
	}{
		{
			name:   "pro-rata amount",
			userID: 1,
			prepareMock: func(orders *MockOrderRepo, refunds *MockRefundRepo) {
				orders.EXPECT().FindByID(gomock.Any(), 5).Return(order(), nil)
				refunds.EXPECT().FindByOrderID(gomock.Any(), 5).Return(nil, nil)
			},
			expectedVerdict: &refund.Verdict{Eligible: true, RefundableAmountCents: 2000, UsedDays: 10, TotalDays: 30},
		},
		{
			name:   "already refunded automatically",
			userID: 1,
			prepareMock: func(orders *MockOrderRepo, refunds *MockRefundRepo) {
				orders.EXPECT().FindByID(gomock.Any(), 5).Return(order(), nil)
				refunds.EXPECT().FindByOrderID(gomock.Any(), 5).Return([]domain.Refund{
					{OrderID: 5, Amount: 500, Status: domain.PaymentStatusSucceeded, IsAutomatic: true},
				}, nil)
			},
			expectedVerdict: &refund.Verdict{Reason: refund.ReasonSingleUse},
		},
		{
			name:   "order not found",
			userID: 1,
			prepareMock: func(orders *MockOrderRepo, _ *MockRefundRepo) {
				orders.EXPECT().FindByID(gomock.Any(), 5).Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name:   "foreign order",
			userID: 2,
			prepareMock: func(orders *MockOrderRepo, _ *MockRefundRepo) {
				orders.EXPECT().FindByID(gomock.Any(), 5).Return(order(), nil)
			},
			expectedError: ErrNotOwner,
		},
		{
			name:   "refunds unavailable",
			userID: 1,
			prepareMock: func(orders *MockOrderRepo, refunds *MockRefundRepo) {
				orders.EXPECT().FindByID(gomock.Any(), 5).Return(order(), nil)
				refunds.EXPECT().FindByOrderID(gomock.Any(), 5).Return(nil, dbErr)
			},
			expectedError: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orders, refunds := NewMock(t)
			tt.prepareMock(orders, refunds)

			verdict, err := service.EvaluateOrder(context.Background(), tt.userID, 5)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, verdict)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedVerdict, verdict)
		})
	}
}
