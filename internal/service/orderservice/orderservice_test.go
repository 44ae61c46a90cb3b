package orderservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	orders  *MockOrderRepo
	servers *MockServerRepo
	panel   *MockPanel
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		orders:  NewMockOrderRepo(ctrl),
		servers: NewMockServerRepo(ctrl),
		panel:   NewMockPanel(ctrl),
	}
	return New(m.orders, m.servers, m.panel), m
}

func provisionedServer(status domain.ServerStatus) *domain.Server {
	ptID := "1a7ce997"
	adminID := 42
	return &domain.Server{ID: 9, OrderID: 3, UserID: 1, PtServerID: &ptID, PtAdminID: &adminID, Status: status}
}

func TestServerLifecycle(t *testing.T) {
	paid := &domain.Order{ID: 3, UserID: 1, Status: domain.OrderStatusPaid}

	tests := []struct {
		name          string
		userID        int
		prepareMock   func(m mocks)
		expectedState domain.LifecycleState
		expectedError error
	}{
		{
			name:   "active",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusActive), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(paid, nil)
			},
			expectedState: domain.LifecycleActive,
		},
		{
			name:   "still installing",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusNone), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(paid, nil)
				m.panel.EXPECT().GetServer(gomock.Any(), "1a7ce997").Return(&panel.Server{IsInstalling: true}, nil)
			},
			expectedState: domain.LifecycleInstalling,
		},
		{
			name:   "install finished on check",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusNone), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(paid, nil)
				m.panel.EXPECT().GetServer(gomock.Any(), "1a7ce997").Return(&panel.Server{IsInstalling: false}, nil)
			},
			expectedState: domain.LifecycleActive,
		},
		{
			name:   "panel down while installing",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusNone), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(paid, nil)
				m.panel.EXPECT().GetServer(gomock.Any(), "1a7ce997").Return(nil, errors.New("unavailable"))
			},
			expectedState: domain.LifecycleInstalling,
		},
		{
			name:   "expired is not re-checked",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusExpired), nil)
				m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(paid, nil)
			},
			expectedState: domain.LifecycleExpired,
		},
		{
			name:   "not found",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(nil, nil)
			},
			expectedError: ErrServerNotFound,
		},
		{
			name:   "foreign server",
			userID: 2,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(provisionedServer(domain.ServerStatusActive), nil)
			},
			expectedError: ErrNotOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			view, err := service.ServerLifecycle(context.Background(), tt.userID, 9)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, 3, view.OrderID)
			require.NotNil(t, view.ServerID)
			assert.Equal(t, 9, *view.ServerID)
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	tests := []struct {
		name          string
		order         *domain.Order
		server        *domain.Server
		expectedState domain.LifecycleState
	}{
		{
			name:          "awaiting payment",
			order:         &domain.Order{ID: 3, UserID: 1, Status: domain.OrderStatusPending},
			expectedState: domain.LifecycleAwaitingPayment,
		},
		{
			name:          "paid and queued",
			order:         &domain.Order{ID: 3, UserID: 1, Status: domain.OrderStatusPaid},
			expectedState: domain.LifecycleProvisioning,
		},
		{
			name:          "creation failed",
			order:         &domain.Order{ID: 3, UserID: 1, Status: domain.OrderStatusCreationFailed},
			server:        &domain.Server{ID: 9, OrderID: 3, Status: domain.ServerStatusCreationFailed},
			expectedState: domain.LifecycleCreationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(tt.order, nil)
			m.servers.EXPECT().FindByOrderID(gomock.Any(), 3).Return(tt.server, nil)

			view, err := service.OrderLifecycle(context.Background(), 1, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, view.State)
			assert.Equal(t, 3, view.OrderID)
		})
	}
}

func TestOrderLifecycle_Errors(t *testing.T) {
	service, m := NewMock(t)
	dbErr := errors.New("db error")

	m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(nil, nil)
	_, err := service.OrderLifecycle(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	m.orders.EXPECT().FindByID(gomock.Any(), 4).Return(&domain.Order{ID: 4, UserID: 7}, nil)
	_, err = service.OrderLifecycle(context.Background(), 1, 4)
	assert.ErrorIs(t, err, ErrNotOwner)

	m.orders.EXPECT().FindByID(gomock.Any(), 5).Return(&domain.Order{ID: 5, UserID: 1}, nil)
	m.servers.EXPECT().FindByOrderID(gomock.Any(), 5).Return(nil, dbErr)
	_, err = service.OrderLifecycle(context.Background(), 1, 5)
	assert.ErrorIs(t, err, dbErr)
}

func TestServerLifecycle_InstallCheckLeavesRowAlone(t *testing.T) {
	service, m := NewMock(t)
	stored := provisionedServer(domain.ServerStatusNone)

	m.servers.EXPECT().FindByID(gomock.Any(), 9).Return(stored, nil)
	m.orders.EXPECT().FindByID(gomock.Any(), 3).Return(&domain.Order{ID: 3, UserID: 1, Status: domain.OrderStatusPaid}, nil)
	m.panel.EXPECT().GetServer(gomock.Any(), "1a7ce997").Return(&panel.Server{IsInstalling: false}, nil)

	view, err := service.ServerLifecycle(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.LifecycleActive, view.State)
	assert.Equal(t, domain.ServerStatusNone, stored.Status)
}
