package maintenanceservice

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"github.com/GlebRadaev/gamehost/internal/scheduler"
	"go.uber.org/zap"
)

const JobName = "maintenance_sweep"

type ServerRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Server, error)
	CountExpired(ctx context.Context, now time.Time) (int, error)
	FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Server, error)
	MarkExpired(ctx context.Context, id int, suspended bool, now time.Time) (bool, error)
	CountDeletable(ctx context.Context, before time.Time) (int, error)
	FindDeletable(ctx context.Context, before time.Time, afterID, limit int) ([]domain.Server, error)
	MarkDeleted(ctx context.Context, id int) (bool, error)
	FindInstalling(ctx context.Context, afterID, limit int) ([]domain.Server, error)
	Extend(ctx context.Context, server *domain.Server) (bool, error)
}

type Panel interface {
	Suspend(ctx context.Context, identifier string, adminID int) error
	Unsuspend(ctx context.Context, adminID int) error
	DeleteServer(ctx context.Context, adminID int) error
}

type Installer interface {
	CheckInstall(ctx context.Context, server domain.Server) (bool, error)
}

// Progress receives sweep progress. *scheduler.Run implements it.
type Progress interface {
	AddTotal(n int)
	Processed()
	Failed()
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

var (
	ErrSweepRunning   = fmt.Errorf("maintenance sweep already running: %w", scheduler.ErrSkipped)
	ErrServerNotFound = errors.New("server not found")
	ErrNotOwner       = errors.New("server belongs to another user")
	ErrNotFreeServer  = errors.New("only free servers can be extended")
	ErrNotExtendable  = errors.New("server cannot be extended in its current status")
)

type CooldownError struct {
	CanExtendAt time.Time
	Remaining   time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("server can be extended again at %s", e.CanExtendAt.Format(time.RFC3339))
}

type Service struct {
	servers      ServerRepo
	panel        Panel
	installer    Installer
	clock        clock.Clock
	pageSize     int
	deleteGrace  time.Duration
	freeDuration time.Duration
	cooldown     time.Duration

	running atomic.Bool
}

func New(cfg config.Maintenance, servers ServerRepo, p Panel, installer Installer, clk clock.Clock) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Service{
		servers:      servers,
		panel:        p,
		installer:    installer,
		clock:        clk,
		pageSize:     cfg.PageSize,
		deleteGrace:  cfg.DeleteGrace,
		freeDuration: cfg.FreeDuration,
		cooldown:     cfg.FreeCooldown,
	}
}

// RunMaintenanceSweep expires servers past their term, deletes servers past the
// grace period and activates servers whose install finished. Running it again
// without time passing does nothing.
func (s *Service) RunMaintenanceSweep(ctx context.Context, progress Progress) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSweepRunning
	}
	defer s.running.Store(false)

	now := s.clock.Now()
	if err := s.expire(ctx, progress, now); err != nil {
		return fmt.Errorf("expiry pass: %w", err)
	}
	if err := s.delete(ctx, progress, now.Add(-s.deleteGrace)); err != nil {
		return fmt.Errorf("deletion pass: %w", err)
	}
	if err := s.activate(ctx, progress); err != nil {
		return fmt.Errorf("install pass: %w", err)
	}
	return nil
}

func (s *Service) expire(ctx context.Context, progress Progress, now time.Time) error {
	count, err := s.servers.CountExpired(ctx, now)
	if err != nil {
		return err
	}
	progress.AddTotal(count)
	if count == 0 {
		return nil
	}
	progress.Infof("%d servers expired", count)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// The filter is evaluated again for every page; expired rows drop out of it.
		page, err := s.servers.FindExpired(ctx, now, s.pageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		updated := 0
		for _, server := range page {
			suspended := s.suspend(ctx, progress, server)
			ok, err := s.servers.MarkExpired(ctx, server.ID, suspended, now)
			if err != nil {
				return err
			}
			if ok {
				updated++
			}
			progress.Processed()
		}
		if updated == 0 {
			return nil
		}
	}
}

func (s *Service) suspend(ctx context.Context, progress Progress, server domain.Server) bool {
	if server.Suspended {
		return true
	}
	if !server.Provisioned() {
		progress.Warnf("server %d has no panel identifiers, expiring without suspend", server.ID)
		return false
	}
	if err := s.panel.Suspend(ctx, *server.PtServerID, *server.PtAdminID); err != nil {
		progress.Failed()
		progress.Warnf("server %d: suspend failed: %v", server.ID, err)
		return false
	}
	progress.Infof("server %d suspended", server.ID)
	return true
}

func (s *Service) delete(ctx context.Context, progress Progress, before time.Time) error {
	count, err := s.servers.CountDeletable(ctx, before)
	if err != nil {
		return err
	}
	progress.AddTotal(count)
	if count == 0 {
		return nil
	}
	progress.Infof("%d servers past the deletion grace period", count)

	afterID := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := s.servers.FindDeletable(ctx, before, afterID, s.pageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		for _, server := range page {
			afterID = server.ID
			if server.Provisioned() {
				err := s.panel.DeleteServer(ctx, *server.PtAdminID)
				if err != nil && !errors.Is(err, panel.ErrNotFound) {
					progress.Failed()
					progress.Processed()
					progress.Warnf("server %d: delete failed, will retry: %v", server.ID, err)
					continue
				}
			}
			if _, err := s.servers.MarkDeleted(ctx, server.ID); err != nil {
				return err
			}
			progress.Processed()
			progress.Infof("server %d deleted", server.ID)
		}
	}
}

// activate counts only servers it activated, so repeated sweeps stay at zero items.
func (s *Service) activate(ctx context.Context, progress Progress) error {
	afterID := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := s.servers.FindInstalling(ctx, afterID, s.pageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		for _, server := range page {
			afterID = server.ID
			done, err := s.installer.CheckInstall(ctx, server)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				zap.L().Warn("install check failed", zap.Int("server_id", server.ID), zap.Error(err))
				continue
			}
			if done {
				progress.AddTotal(1)
				progress.Processed()
				progress.Infof("server %d install finished", server.ID)
			}
		}
	}
}

// ExtendFreeServer renews a free server for another term once the cooldown since
// the previous extension has passed.
func (s *Service) ExtendFreeServer(ctx context.Context, userID, serverID int) (*domain.Server, error) {
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
	if !server.FreeServer {
		return nil, ErrNotFreeServer
	}
	if server.Status.Terminal() {
		return nil, domain.ErrTerminalStatus
	}
	if server.Status != domain.ServerStatusActive && server.Status != domain.ServerStatusExpired {
		return nil, ErrNotExtendable
	}

	now := s.clock.Now()
	if server.LastExtended != nil {
		canExtendAt := server.LastExtended.Add(s.cooldown)
		if canExtendAt.After(now) {
			return nil, &CooldownError{CanExtendAt: canExtendAt, Remaining: canExtendAt.Sub(now)}
		}
	}

	if err := server.Transition(domain.ServerStatusActive); err != nil {
		return nil, err
	}
	server.Expires = now.Add(s.freeDuration)
	server.LastExtended = &now

	log := zap.L().With(zap.Int("server_id", server.ID), zap.Int("user_id", userID))
	if server.Suspended && server.Provisioned() {
		if err := s.panel.Unsuspend(ctx, *server.PtAdminID); err != nil {
			log.Warn("failed to unsuspend extended server", zap.Error(err))
		} else {
			server.Suspended = false
		}
	}

	ok, err := s.servers.Extend(ctx, server)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotExtendable
	}
	log.Info("free server extended", zap.Time("expires", server.Expires))
	return server, nil
}
