package provisionservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
	serverrepo "github.com/GlebRadaev/gamehost/internal/repo/server-repo"
	"go.uber.org/zap"
)

// JobName is the queue the provisioning worker consumes.
const JobName = "provision"

type OrderRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Order, error)
}

type ServerRepo interface {
	FindByOrderID(ctx context.Context, orderID int) (*domain.Server, error)
	CreateProvisioned(ctx context.Context, server *domain.Server) error
	CreateFailed(ctx context.Context, server *domain.Server) error
	Activate(ctx context.Context, id int) (bool, error)
}

type Panel interface {
	GetUserByExternalID(ctx context.Context, externalID string) (*panel.User, error)
	GetServerByExternalID(ctx context.Context, externalID string) (*panel.Server, error)
	CreateServer(ctx context.Context, req panel.CreateServerRequest) (*panel.Server, error)
	GetServer(ctx context.Context, identifier string) (*panel.Server, error)
}

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPaid       = errors.New("order is not paid")
	ErrAlreadyProvisioned = errors.New("order already has a server")
	// ErrFatal marks failures that were recorded as CREATION_FAILED and must not be retried.
	ErrFatal = errors.New("provisioning failed permanently")
)

type Result struct {
	ServerID   int    `json:"serverId"`
	PtServerID string `json:"ptServerId"`
	Installing bool   `json:"installing"`
}

type Service struct {
	orders       OrderRepo
	servers      ServerRepo
	panel        Panel
	templates    *Registry
	limits       LimitsConfig
	clock        clock.Clock
	pollInterval time.Duration
	pollAttempts int
}

func New(cfg config.Provision, orders OrderRepo, servers ServerRepo, p Panel, templates *Registry, clk clock.Clock) *Service {
	return &Service{
		orders:       orders,
		servers:      servers,
		panel:        p,
		templates:    templates,
		limits:       LimitsFromConfig(cfg),
		clock:        clk,
		pollInterval: cfg.PollInterval,
		pollAttempts: cfg.PollAttempts,
	}
}

// IsRetryable reports whether a Provision error may succeed on a later attempt.
func IsRetryable(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrFatal) &&
		!errors.Is(err, ErrOrderNotFound) &&
		!errors.Is(err, ErrOrderNotPaid) &&
		!errors.Is(err, ErrAlreadyProvisioned) &&
		!errors.Is(err, context.Canceled)
}

func externalID(order *domain.Order) string {
	return "order-" + strconv.Itoa(order.ID)
}

// Provision creates the remote server for a paid order, stores it and waits for
// the install to finish. Input and panel validation errors are recorded as
// CREATION_FAILED; transient panel errors are returned without touching the store.
func (s *Service) Provision(ctx context.Context, orderID int) (*Result, error) {
	log := zap.L().With(zap.Int("order_id", orderID))

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.ServerID != nil {
		return nil, ErrAlreadyProvisioned
	}
	if order.Status != domain.OrderStatusPaid {
		return nil, ErrOrderNotPaid
	}
	existing, err := s.servers.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyProvisioned
	}

	user, err := s.panel.GetUserByExternalID(ctx, strconv.Itoa(order.UserID))
	if err != nil {
		return nil, s.settle(ctx, order, fmt.Errorf("resolve panel user: %w", err))
	}

	limits, err := BuildLimits(order.Hardware, s.limits)
	if err != nil {
		return nil, s.fail(ctx, order, err)
	}
	if order.DiskMB > 0 && order.DiskMB != limits.Limits.Disk {
		log.Warn("stored disk size differs from derived value, using derived",
			zap.Int("stored", order.DiskMB), zap.Int("derived", limits.Limits.Disk))
	}
	if order.BackupCount > 0 && order.BackupCount != limits.Features.Backups {
		log.Warn("stored backup count differs from derived value, using derived",
			zap.Int("stored", order.BackupCount), zap.Int("derived", limits.Features.Backups))
	}

	builder, err := s.templates.Resolve(order.Game, order.Flavor)
	if err != nil {
		return nil, s.fail(ctx, order, err)
	}
	tmpl := builder(*order)

	remote, err := s.createRemote(ctx, order, user.ID, tmpl, limits)
	if err != nil {
		return nil, s.settle(ctx, order, fmt.Errorf("create panel server: %w", err))
	}

	ptServerID, ptAdminID := remote.Identifier, remote.ID
	server := &domain.Server{
		OrderID:    order.ID,
		UserID:     order.UserID,
		PtServerID: &ptServerID,
		PtAdminID:  &ptAdminID,
		Expires:    order.ExpiresAt,
		FreeServer: order.Type == domain.OrderTypeFreeServer,
		Type:       order.Type,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.servers.CreateProvisioned(ctx, server); err != nil {
		if errors.Is(err, serverrepo.ErrOrderTaken) {
			log.Error("order was settled while the panel server was created",
				zap.String("identifier", ptServerID), zap.Int("pt_admin_id", ptAdminID))
			return nil, ErrAlreadyProvisioned
		}
		return nil, err
	}
	log.Info("server created", zap.Int("server_id", server.ID), zap.String("identifier", ptServerID))

	result := &Result{ServerID: server.ID, PtServerID: ptServerID, Installing: true}
	installed, err := s.waitInstalled(ctx, server)
	if err != nil {
		return result, err
	}
	result.Installing = !installed
	if !installed {
		log.Info("server still installing, leaving it for the next check", zap.Int("server_id", server.ID))
	}
	return result, nil
}

// createRemote reuses a panel server left by an earlier attempt that died before storing it.
func (s *Service) createRemote(ctx context.Context, order *domain.Order, userID int, tmpl StartupTemplate, limits ServerLimits) (*panel.Server, error) {
	extID := externalID(order)
	found, err := s.panel.GetServerByExternalID(ctx, extID)
	switch {
	case err == nil:
		zap.L().Warn("reusing panel server from a previous attempt",
			zap.Int("order_id", order.ID), zap.String("identifier", found.Identifier))
		return found, nil
	case !errors.Is(err, panel.ErrNotFound):
		return nil, err
	}

	return s.panel.CreateServer(ctx, panel.CreateServerRequest{
		ExternalID:        extID,
		Name:              serverName(*order),
		User:              userID,
		Egg:               tmpl.EggID,
		DockerImage:       tmpl.DockerImage,
		Startup:           tmpl.Startup,
		Environment:       tmpl.Environment,
		Limits:            limits.Limits,
		FeatureLimits:     limits.Features,
		StartOnCompletion: true,
	})
}

// waitInstalled polls the panel until the install finishes or the attempts run out.
// Poll errors are logged and use up an attempt.
func (s *Service) waitInstalled(ctx context.Context, server *domain.Server) (bool, error) {
	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		if err := sleep(ctx, s.pollInterval); err != nil {
			return false, err
		}
		done, err := s.CheckInstall(ctx, *server)
		if err != nil {
			zap.L().Warn("install poll failed",
				zap.Int("server_id", server.ID), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if done {
			server.Status = domain.ServerStatusActive
			return true, nil
		}
	}
	return false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckInstall asks the panel once and activates the server when its install is done.
func (s *Service) CheckInstall(ctx context.Context, server domain.Server) (bool, error) {
	if !server.Provisioned() {
		return false, fmt.Errorf("server %d has no panel identifiers", server.ID)
	}
	remote, err := s.panel.GetServer(ctx, *server.PtServerID)
	if err != nil {
		return false, err
	}
	if remote.IsInstalling {
		return false, nil
	}
	activated, err := s.servers.Activate(ctx, server.ID)
	if err != nil {
		return false, err
	}
	if activated {
		zap.L().Info("server install finished", zap.Int("server_id", server.ID))
	}
	return true, nil
}

// settle fails the order for permanent panel errors and passes transient ones through.
func (s *Service) settle(ctx context.Context, order *domain.Order, err error) error {
	if panel.IsTransient(err) {
		return err
	}
	return s.fail(ctx, order, err)
}

func (s *Service) fail(ctx context.Context, order *domain.Order, cause error) error {
	zap.L().Error("provisioning failed", zap.Int("order_id", order.ID), zap.Error(cause))

	fatal := fmt.Errorf("%w: %w", ErrFatal, cause)
	if err := s.recordFailure(ctx, order); err != nil {
		return errors.Join(fatal, err)
	}
	return fatal
}

func (s *Service) recordFailure(ctx context.Context, order *domain.Order) error {
	server := &domain.Server{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Expires:    order.ExpiresAt,
		FreeServer: order.Type == domain.OrderTypeFreeServer,
		Type:       order.Type,
		CreatedAt:  s.clock.Now(),
	}
	err := s.servers.CreateFailed(ctx, server)
	if errors.Is(err, serverrepo.ErrOrderTaken) {
		return nil
	}
	return err
}

// MarkFailed settles an order whose provisioning kept failing with transient errors.
// Orders that already have a server are left alone.
func (s *Service) MarkFailed(ctx context.Context, orderID int, cause error) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.ServerID != nil || order.Status != domain.OrderStatusPaid {
		return nil
	}
	existing, err := s.servers.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	zap.L().Error("giving up on provisioning", zap.Int("order_id", orderID), zap.Error(cause))
	return s.recordFailure(ctx, order)
}
