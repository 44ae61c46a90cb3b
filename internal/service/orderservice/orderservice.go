package orderservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Order, error)
}

type ServerRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Server, error)
	FindByOrderID(ctx context.Context, orderID int) (*domain.Server, error)
}

// Panel is only read here. Activation of finished installs belongs to the sweep.
type Panel interface {
	GetServer(ctx context.Context, identifier string) (*panel.Server, error)
}

type Service struct {
	orders  OrderRepo
	servers ServerRepo
	panel   Panel
}

func New(orders OrderRepo, servers ServerRepo, p Panel) *Service {
	return &Service{
		orders:  orders,
		servers: servers,
		panel:   p,
	}
}

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrServerNotFound = errors.New("server not found")
	ErrNotOwner       = errors.New("resource belongs to another user")
)

type LifecycleView struct {
	OrderID   int                   `json:"orderId"`
	ServerID  *int                  `json:"serverId,omitempty"`
	State     domain.LifecycleState `json:"state"`
	Expires   *time.Time            `json:"expires,omitempty"`
	Suspended bool                  `json:"suspended"`
}

func (s *Service) OrderLifecycle(ctx context.Context, userID, orderID int) (*LifecycleView, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}

	server, err := s.servers.FindByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get server for order", zap.Int("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return s.view(ctx, order, server), nil
}

func (s *Service) ServerLifecycle(ctx context.Context, userID, serverID int) (*LifecycleView, error) {
	server, err := s.servers.FindByID(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if server == nil {
		return nil, ErrServerNotFound
	}
	if server.UserID != userID {
		return nil, ErrNotOwner
	}

	order, err := s.orders.FindByID(ctx, server.OrderID)
	if err != nil {
		zap.L().Error("failed to get order for server", zap.Int("server_id", serverID), zap.Error(err))
		return nil, err
	}
	return s.view(ctx, order, server), nil
}

func (s *Service) view(ctx context.Context, order *domain.Order, server *domain.Server) *LifecycleView {
	view := &LifecycleView{}
	if order != nil {
		view.OrderID = order.ID
	}

	installing := false
	if server != nil {
		view.OrderID = server.OrderID
		view.ServerID = &server.ID
		view.Expires = &server.Expires
		view.Suspended = server.Suspended

		observed := *server
		installing = s.installing(ctx, &observed)
		server = &observed
	}
	view.State = domain.Lifecycle(order, server, installing)
	return view
}

// installing asks the panel about servers whose install was never confirmed.
// A finished install shows as active in the view only; the stored row waits
// for the sweep's install pass.
func (s *Service) installing(ctx context.Context, server *domain.Server) bool {
	if server.Status != domain.ServerStatusNone || !server.Provisioned() {
		return false
	}
	remote, err := s.panel.GetServer(ctx, *server.PtServerID)
	if err != nil {
		zap.L().Warn("install check failed", zap.Int("server_id", server.ID), zap.Error(err))
		return true
	}
	if !remote.IsInstalling {
		server.Status = domain.ServerStatusActive
	}
	return remote.IsInstalling
}
