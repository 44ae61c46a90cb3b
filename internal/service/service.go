package service

import (
	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"github.com/GlebRadaev/gamehost/internal/refund"
	"github.com/GlebRadaev/gamehost/internal/repo"
	"github.com/GlebRadaev/gamehost/internal/service/maintenanceservice"
	"github.com/GlebRadaev/gamehost/internal/service/orderservice"
	"github.com/GlebRadaev/gamehost/internal/service/provisionservice"
	"github.com/GlebRadaev/gamehost/internal/service/refundservice"
)

type Services struct {
	ProvisionService   *provisionservice.Service
	MaintenanceService *maintenanceservice.Service
	RefundService      *refundservice.Service
	OrderService       *orderservice.Service
}

func New(cfg *config.Config, repos *repo.Repositories, panelClient *panel.Client, clk clock.Clock) *Services {
	provisionService := provisionservice.New(
		cfg.Provision, repos.OrderRepo, repos.ServerRepo, panelClient, provisionservice.DefaultRegistry(), clk,
	)
	maintenanceService := maintenanceservice.New(cfg.Maintenance, repos.ServerRepo, panelClient, provisionService, clk)
	refundService := refundservice.New(repos.OrderRepo, repos.RefundRepo, refund.New(cfg.RefundWindow), clk)
	orderService := orderservice.New(repos.OrderRepo, repos.ServerRepo, panelClient)

	return &Services{
		ProvisionService:   provisionService,
		MaintenanceService: maintenanceService,
		RefundService:      refundService,
		OrderService:       orderService,
	}
}
