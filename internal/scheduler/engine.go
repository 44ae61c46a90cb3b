// Package scheduler runs cron jobs and queue workers, records every execution
// as a JobRun and drains in-flight work on shutdown.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/metrics"
	"github.com/GlebRadaev/gamehost/internal/queue"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownJob   = errors.New("unknown job")
	ErrJobRunning   = errors.New("job is already running")
	ErrDuplicateJob = errors.New("job already registered")
	ErrStopped      = errors.New("scheduler is shutting down")
	ErrDrainTimeout = errors.New("timed out waiting for running jobs")
	ErrRunNotFound  = errors.New("job run not found")
	// ErrSkipped is returned by handlers that decided not to run. The run is discarded.
	ErrSkipped = errors.New("run skipped")
)

const (
	queueOpTimeout = 5 * time.Second
	cancelGrace    = 500 * time.Millisecond
)

const staleRunMessage = "interrupted by process restart"

type Kind string

const (
	KindCron  Kind = "cron"
	KindQueue Kind = "queue"
)

type Handler func(ctx context.Context, run *Run) error

type WorkerHandler func(ctx context.Context, run *Run, item queue.Item) error

type RunStore interface {
	Create(ctx context.Context, run *domain.JobRun) error
	UpdateProgress(ctx context.Context, run *domain.JobRun) error
	Finish(ctx context.Context, run *domain.JobRun) error
	Delete(ctx context.Context, id string) error
	CloseStale(ctx context.Context, now time.Time, message string) (int, error)
	AddLog(ctx context.Context, entry *domain.JobRunLog) error
	Latest(ctx context.Context) ([]domain.JobRun, error)
	ListByType(ctx context.Context, jobType string, limit int) ([]domain.JobRun, error)
	FindByID(ctx context.Context, id string) (*domain.JobRun, error)
	Logs(ctx context.Context, runID string) ([]domain.JobRunLog, error)
}

// Queue hands out items that stay reserved until they are acked or released.
type Queue interface {
	Push(ctx context.Context, name string, item queue.Item) error
	Pop(ctx context.Context, name string, timeout time.Duration) (*queue.Item, error)
	Ack(ctx context.Context, name string, item queue.Item) error
	Release(ctx context.Context, name string, item queue.Item) error
	Recover(ctx context.Context, name string) (int, error)
}

type Result struct {
	RunID     string `json:"runId"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Failed    int    `json:"failed"`
}

type JobStatus struct {
	Name      string     `json:"name"`
	Kind      Kind       `json:"kind"`
	Schedule  string     `json:"schedule,omitempty"`
	IsRunning bool       `json:"isRunning"`
	NextRun   *time.Time `json:"nextRun,omitempty"`
}

type RunDetail struct {
	Run  domain.JobRun      `json:"run"`
	Logs []domain.JobRunLog `json:"logs"`
}

type job struct {
	name     string
	kind     Kind
	schedule string
	handler  Handler
	worker   WorkerHandler
	opts     WorkerOptions
	entryID  cron.EntryID
	// running counts executions in progress; it never goes above one.
	running atomic.Int32
	// exec serialises queue items of one job type.
	exec sync.Mutex
}

func (j *job) tryAcquire() bool {
	return j.running.CompareAndSwap(0, 1)
}

func (j *job) release() {
	j.running.Add(-1)
}

type Engine struct {
	cfg     Config
	store   RunStore
	queue   Queue
	clock   clock.Clock
	metrics *metrics.Metrics
	cron    *cron.Cron

	mu       sync.Mutex
	jobs     map[string]*job
	names    []string
	started  bool
	stopping bool

	// runCtx is handed to executions. It is cancelled only when a drain times out.
	runCtx    context.Context
	cancelRun context.CancelFunc
	// popCtx stops queue consumers as soon as shutdown begins.
	popCtx    context.Context
	cancelPop context.CancelFunc
	stop      chan struct{}

	inflight  sync.WaitGroup
	consumers errgroup.Group
}

func New(cfg Config, store RunStore, q Queue, clk clock.Clock, m *metrics.Metrics) *Engine {
	runCtx, cancelRun := context.WithCancel(context.Background())
	popCtx, cancelPop := context.WithCancel(context.Background())
	return &Engine{
		cfg:       cfg.withDefaults(),
		store:     store,
		queue:     q,
		clock:     clk,
		metrics:   m,
		cron:      cron.New(),
		jobs:      make(map[string]*job),
		runCtx:    runCtx,
		cancelRun: cancelRun,
		popCtx:    popCtx,
		cancelPop: cancelPop,
		stop:      make(chan struct{}),
	}
}

// RegisterCron adds a job run on a standard five-field schedule or a descriptor such as "@every 15m".
func (e *Engine) RegisterCron(name, schedule string, handler Handler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	if e.started {
		return fmt.Errorf("register %s: scheduler already started", name)
	}

	j := &job{name: name, kind: KindCron, schedule: schedule, handler: handler}
	id, err := e.cron.AddFunc(schedule, func() { e.runCron(j) })
	if err != nil {
		return fmt.Errorf("register %s: invalid schedule %q: %w", name, schedule, err)
	}
	j.entryID = id
	e.jobs[name] = j
	e.names = append(e.names, name)
	return nil
}

func (e *Engine) RegisterWorker(name string, handler WorkerHandler, opts WorkerOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}
	if e.started {
		return fmt.Errorf("register %s: scheduler already started", name)
	}

	e.jobs[name] = &job{name: name, kind: KindQueue, worker: handler, opts: opts.withDefaults()}
	e.names = append(e.names, name)
	return nil
}

// Start closes runs left open by a previous process, starts the cron clock and
// queue consumers, and runs every cron job once after StartupDelay.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return errors.New("scheduler already started")
	}
	e.started = true
	jobs := e.snapshotLocked()
	e.mu.Unlock()

	closed, err := e.store.CloseStale(ctx, e.clock.Now(), staleRunMessage)
	if err != nil {
		return fmt.Errorf("close stale runs: %w", err)
	}
	if closed > 0 {
		zap.L().Warn("closed job runs left open by a previous process", zap.Int("count", closed))
	}

	for _, j := range jobs {
		if j.kind != KindQueue {
			continue
		}
		recovered, err := e.queue.Recover(ctx, j.name)
		if err != nil {
			return fmt.Errorf("recover %s items: %w", j.name, err)
		}
		if recovered > 0 {
			zap.L().Warn("returned items left unfinished by a previous process",
				zap.String("job", j.name), zap.Int("count", recovered))
		}
	}

	e.cron.Start()

	for _, j := range jobs {
		if j.kind != KindQueue {
			continue
		}
		j := j
		pool := NewWorkerPool(1)
		e.consumers.Go(func() error {
			defer pool.Close()
			e.consume(j, pool)
			return nil
		})
	}

	go e.catchUp(jobs)

	zap.L().Info("scheduler started", zap.Int("jobs", len(jobs)), zap.Duration("startup_delay", e.cfg.StartupDelay))
	return nil
}

func (e *Engine) catchUp(jobs []*job) {
	timer := time.NewTimer(e.cfg.StartupDelay)
	defer timer.Stop()
	select {
	case <-e.stop:
		return
	case <-timer.C:
	}

	for _, j := range jobs {
		if j.kind == KindCron {
			go e.runCron(j)
		}
	}
}

func (e *Engine) snapshotLocked() []*job {
	jobs := make([]*job, 0, len(e.names))
	for _, name := range e.names {
		jobs = append(jobs, e.jobs[name])
	}
	return jobs
}

// begin registers an execution unless shutdown has started.
func (e *Engine) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopping {
		return false
	}
	e.inflight.Add(1)
	return true
}

func (e *Engine) runCron(j *job) {
	if !e.begin() {
		return
	}
	defer e.inflight.Done()

	if !j.tryAcquire() {
		zap.L().Info("job skipped, previous run still going", zap.String("job", j.name))
		e.metrics.JobSkipped(j.name)
		return
	}
	defer j.release()

	if _, err := e.execute(e.runCtx, j.name, j.handler); err != nil && !errors.Is(err, ErrSkipped) {
		zap.L().Error("job failed", zap.String("job", j.name), zap.Error(err))
	}
}

// execute records one run of fn. A panic in fn fails the run.
func (e *Engine) execute(ctx context.Context, name string, fn Handler) (res Result, err error) {
	record := domain.JobRun{
		ID:        uuid.NewString(),
		JobType:   name,
		Status:    domain.JobStatusRunning,
		StartedAt: e.clock.Now(),
	}
	if err := e.store.Create(context.WithoutCancel(ctx), &record); err != nil {
		return Result{}, fmt.Errorf("create job run: %w", err)
	}
	run := newRun(ctx, e.store, e.clock, e.metrics, record)
	run.log.Info("job started")
	e.metrics.JobStarted(name)

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		err = fn(ctx, run)
	}()

	if errors.Is(err, ErrSkipped) {
		e.metrics.JobSkipped(name)
		run.log.Info("job skipped", zap.Error(err))
		if delErr := e.store.Delete(context.WithoutCancel(ctx), record.ID); delErr != nil {
			run.log.Warn("failed to discard skipped run", zap.Error(delErr))
		}
		return Result{}, err
	}

	status := domain.JobStatusCompleted
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil):
		status = domain.JobStatusCancelled
	case err != nil:
		status = domain.JobStatusFailed
	}
	if finishErr := run.finish(status, err); finishErr != nil {
		run.log.Error("failed to close job run", zap.Error(finishErr))
	}
	e.metrics.JobFinished(name, string(status), run.elapsed(), err)

	res = run.Result()
	fields := []zap.Field{
		zap.String("status", string(status)),
		zap.Int("processed", res.Processed),
		zap.Int("total", res.Total),
		zap.Int("failed", res.Failed),
	}
	if err != nil {
		run.log.Warn("job finished", append(fields, zap.Error(err))...)
	} else {
		run.log.Info("job finished", fields...)
	}
	return res, err
}

func (e *Engine) consume(j *job, pool *WorkerPool) {
	for {
		if e.popCtx.Err() != nil {
			return
		}
		item, err := e.queue.Pop(e.popCtx, j.name, e.cfg.PopTimeout)
		if err != nil {
			if e.popCtx.Err() != nil {
				return
			}
			zap.L().Warn("queue pop failed", zap.String("job", j.name), zap.Error(err))
			if sleepCtx(e.popCtx, time.Second) != nil {
				return
			}
			continue
		}
		if item == nil {
			continue
		}

		if !e.begin() {
			e.release(j.name, *item)
			return
		}
		popped := *item
		err = pool.AddTask(e.popCtx, func() {
			defer e.inflight.Done()
			e.process(j, popped)
		})
		if err != nil {
			e.inflight.Done()
			e.release(j.name, popped)
			return
		}
	}
}

// release returns an unfinished item to the queue. If that fails the item stays
// reserved and Start recovers it.
func (e *Engine) release(name string, item queue.Item) {
	ctx, cancel := context.WithTimeout(context.Background(), queueOpTimeout)
	defer cancel()
	if err := e.queue.Release(ctx, name, item); err != nil {
		zap.L().Error("failed to return item to queue", zap.String("job", name), zap.String("item_id", item.ID), zap.Error(err))
	}
}

func (e *Engine) ack(name string, item queue.Item) {
	ctx, cancel := context.WithTimeout(context.Background(), queueOpTimeout)
	defer cancel()
	if err := e.queue.Ack(ctx, name, item); err != nil {
		zap.L().Error("failed to ack queue item", zap.String("job", name), zap.String("item_id", item.ID), zap.Error(err))
	}
}

// process runs one item. Items whose run never started or was cut off by
// shutdown go back to the queue; any other outcome acks them.
func (e *Engine) process(j *job, item queue.Item) {
	j.exec.Lock()
	defer j.exec.Unlock()
	j.running.Add(1)
	defer j.release()

	started, interrupted := false, false
	_, err := e.execute(e.runCtx, j.name, func(ctx context.Context, run *Run) error {
		started = true
		run.SetTotal(1)
		run.Infof("processing item %s enqueued at %s", item.ID, item.EnqueuedAt.Format(time.RFC3339))

		var lastErr error
		for attempt := 1; attempt <= j.opts.Attempts; attempt++ {
			lastErr = j.worker(ctx, run, item)
			if lastErr == nil {
				run.Processed()
				return nil
			}
			if ctx.Err() != nil {
				interrupted = true
				return lastErr
			}
			if attempt == j.opts.Attempts || (j.opts.Retryable != nil && !j.opts.Retryable(lastErr)) {
				break
			}
			run.Warnf("attempt %d/%d failed: %v", attempt, j.opts.Attempts, lastErr)
			if err := sleepCtx(ctx, j.opts.Backoff*time.Duration(attempt)); err != nil {
				interrupted = true
				return err
			}
		}

		run.Failed()
		run.Processed()
		run.Errorf("item %s failed: %v", item.ID, lastErr)
		if j.opts.OnExhausted != nil {
			j.opts.OnExhausted(ctx, item, lastErr)
		}
		return lastErr
	})
	if err != nil {
		zap.L().Error("queue item failed", zap.String("job", j.name), zap.String("item_id", item.ID), zap.Error(err))
	}

	switch {
	case interrupted:
		e.release(j.name, item)
	case !started:
		e.release(j.name, item)
		// The run store is failing; hold the consumer back before the next pop.
		_ = sleepCtx(e.popCtx, time.Second)
	default:
		e.ack(j.name, item)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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

func (e *Engine) lookup(name string) (*job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	j, ok := e.jobs[name]
	return j, ok
}

func (e *Engine) triggerable(name string) (*job, bool) {
	j, ok := e.lookup(name)
	if !ok || j.kind != KindCron {
		return nil, false
	}
	if len(e.cfg.AllowList) > 0 && !slices.Contains(e.cfg.AllowList, name) {
		return nil, false
	}
	return j, true
}

// Trigger runs an allowed cron job now and waits for it. If ctx ends first the
// run keeps going and ctx's error is returned.
func (e *Engine) Trigger(ctx context.Context, name string) (*Result, error) {
	j, ok := e.triggerable(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if !e.begin() {
		return nil, ErrStopped
	}
	if !j.tryAcquire() {
		e.inflight.Done()
		return nil, fmt.Errorf("%w: %s", ErrJobRunning, name)
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer e.inflight.Done()
		defer j.release()
		res, err := e.execute(e.runCtx, j.name, j.handler)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		return &o.res, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Enqueue adds a work item for a registered queue worker.
func (e *Engine) Enqueue(ctx context.Context, name string, payload any) (*queue.Item, error) {
	j, ok := e.lookup(name)
	if !ok || j.kind != KindQueue {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	item := queue.Item{
		ID:         uuid.NewString(),
		Payload:    data,
		EnqueuedAt: e.clock.Now(),
	}
	if err := e.queue.Push(ctx, name, item); err != nil {
		return nil, err
	}
	zap.L().Info("job enqueued", zap.String("job", name), zap.String("item_id", item.ID))
	return &item, nil
}

func (e *Engine) Status() []JobStatus {
	e.mu.Lock()
	jobs := e.snapshotLocked()
	e.mu.Unlock()

	statuses := make([]JobStatus, 0, len(jobs))
	for _, j := range jobs {
		status := JobStatus{
			Name:      j.name,
			Kind:      j.kind,
			Schedule:  j.schedule,
			IsRunning: j.running.Load() > 0,
		}
		if j.kind == KindCron {
			if next := e.cron.Entry(j.entryID).Next; !next.IsZero() {
				status.NextRun = &next
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (e *Engine) LatestRuns(ctx context.Context) ([]domain.JobRun, error) {
	return e.store.Latest(ctx)
}

func (e *Engine) Runs(ctx context.Context, jobType string, limit int) ([]domain.JobRun, error) {
	return e.store.ListByType(ctx, jobType, limit)
}

func (e *Engine) RunDetail(ctx context.Context, id string) (*RunDetail, error) {
	run, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	logs, err := e.store.Logs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RunDetail{Run: *run, Logs: logs}, nil
}

// Shutdown stops new work and waits for running jobs. When ctx ends first the
// running jobs are cancelled and ErrDrainTimeout is returned.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.stopping {
		e.mu.Unlock()
		return nil
	}
	e.stopping = true
	started := e.started
	e.mu.Unlock()

	zap.L().Info("scheduler shutting down")
	close(e.stop)
	e.cancelPop()

	cronDone := make(chan struct{})
	if started {
		go func() {
			<-e.cron.Stop().Done()
			close(cronDone)
		}()
	} else {
		close(cronDone)
	}

	drained := make(chan struct{})
	go func() {
		_ = e.consumers.Wait()
		e.inflight.Wait()
		<-cronDone
		close(drained)
	}()

	select {
	case <-drained:
		e.cancelRun()
		zap.L().Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		e.cancelRun()
		zap.L().Error("scheduler drain timed out, cancelling running jobs")
		// Give cancelled runs a moment to close and hand their items back.
		timer := time.NewTimer(cancelGrace)
		defer timer.Stop()
		select {
		case <-drained:
		case <-timer.C:
		}
		return ErrDrainTimeout
	}
}
