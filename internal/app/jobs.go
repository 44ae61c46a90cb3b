package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/dto"
	"github.com/GlebRadaev/gamehost/internal/queue"
	"github.com/GlebRadaev/gamehost/internal/scheduler"
	"github.com/GlebRadaev/gamehost/internal/service/maintenanceservice"
	"github.com/GlebRadaev/gamehost/internal/service/provisionservice"
)

var errBadPayload = errors.New("bad provision payload")

type Sweeper interface {
	RunMaintenanceSweep(ctx context.Context, progress maintenanceservice.Progress) error
}

type Provisioner interface {
	Provision(ctx context.Context, orderID int) (*provisionservice.Result, error)
	MarkFailed(ctx context.Context, orderID int, cause error) error
}

type JobRegistry interface {
	RegisterCron(name, schedule string, handler scheduler.Handler) error
	RegisterWorker(name string, handler scheduler.WorkerHandler, opts scheduler.WorkerOptions) error
}

type runLogger interface {
	Infof(format string, args ...any)
}

func registerJobs(engine JobRegistry, cfg *config.Config, sweeper Sweeper, provisioner Provisioner) error {
	err := engine.RegisterCron(maintenanceservice.JobName, cfg.Maintenance.Schedule,
		func(ctx context.Context, run *scheduler.Run) error {
			return sweeper.RunMaintenanceSweep(ctx, run)
		})
	if err != nil {
		return fmt.Errorf("register %s: %w", maintenanceservice.JobName, err)
	}

	worker := &provisionWorker{provisioner: provisioner}
	err = engine.RegisterWorker(provisionservice.JobName,
		func(ctx context.Context, run *scheduler.Run, item queue.Item) error {
			return worker.handle(ctx, run, item)
		},
		scheduler.WorkerOptions{
			Attempts:    cfg.Provision.Attempts,
			Backoff:     cfg.Provision.Backoff,
			Retryable:   retryableProvision,
			OnExhausted: worker.exhausted,
		})
	if err != nil {
		return fmt.Errorf("register %s: %w", provisionservice.JobName, err)
	}
	return nil
}

func retryableProvision(err error) bool {
	return !errors.Is(err, errBadPayload) && provisionservice.IsRetryable(err)
}

type provisionWorker struct {
	provisioner Provisioner
}

func decodeProvision(item queue.Item) (dto.ProvisionPayload, error) {
	var payload dto.ProvisionPayload
	if err := json.Unmarshal(item.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: %w", errBadPayload, err)
	}
	if payload.OrderID <= 0 {
		return payload, fmt.Errorf("%w: order id %d", errBadPayload, payload.OrderID)
	}
	return payload, nil
}

func (w *provisionWorker) handle(ctx context.Context, log runLogger, item queue.Item) error {
	payload, err := decodeProvision(item)
	if err != nil {
		return err
	}
	result, err := w.provisioner.Provision(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("order %d: %w", payload.OrderID, err)
	}
	if result.Installing {
		log.Infof("order %d: server %d created, install still running", payload.OrderID, result.ServerID)
	} else {
		log.Infof("order %d: server %d active", payload.OrderID, result.ServerID)
	}
	return nil
}

// exhausted settles orders whose provisioning kept failing with transient errors.
func (w *provisionWorker) exhausted(ctx context.Context, item queue.Item, cause error) {
	if !provisionservice.IsRetryable(cause) {
		return
	}
	payload, err := decodeProvision(item)
	if err != nil {
		return
	}
	if err := w.provisioner.MarkFailed(ctx, payload.OrderID, cause); err != nil {
		zap.L().Error("can't mark order as failed", zap.Int("order_id", payload.OrderID), zap.Error(err))
	}
}
