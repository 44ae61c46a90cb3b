package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/metrics"
	"go.uber.org/zap"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

const maxErrorMessage = 2000

// Run is one execution of a job. Handlers report progress through it; every
// change is written to the store so the run can be watched while it is going.
type Run struct {
	mu      sync.Mutex
	ctx     context.Context
	store   RunStore
	clock   clock.Clock
	metrics *metrics.Metrics
	log     *zap.Logger
	record  domain.JobRun
}

func newRun(ctx context.Context, store RunStore, clk clock.Clock, m *metrics.Metrics, record domain.JobRun) *Run {
	return &Run{
		ctx:     context.WithoutCancel(ctx),
		store:   store,
		clock:   clk,
		metrics: m,
		log:     zap.L().With(zap.String("job", record.JobType), zap.String("run_id", record.ID)),
		record:  record,
	}
}

func (r *Run) ID() string {
	return r.record.ID
}

func (r *Run) Job() string {
	return r.record.JobType
}

// SetTotal records how many items the run expects to handle.
func (r *Run) SetTotal(total int) {
	r.mu.Lock()
	r.record.ItemsTotal = &total
	r.clampLocked()
	r.mu.Unlock()
	r.persist()
}

// AddTotal grows the expected item count, for jobs that discover work in passes.
func (r *Run) AddTotal(n int) {
	r.mu.Lock()
	total := n
	if r.record.ItemsTotal != nil {
		total += *r.record.ItemsTotal
	}
	r.record.ItemsTotal = &total
	r.clampLocked()
	r.mu.Unlock()
	r.persist()
}

func (r *Run) Processed() {
	r.mu.Lock()
	r.record.ItemsProcessed++
	r.clampLocked()
	r.mu.Unlock()
	r.metrics.ItemProcessed(r.record.JobType)
	r.persist()
}

// Failed counts an item that failed without stopping the run. Call Processed for it as well.
func (r *Run) Failed() {
	r.mu.Lock()
	r.record.ItemsFailed++
	r.mu.Unlock()
	r.metrics.ItemFailed(r.record.JobType)
	r.persist()
}

// clampLocked keeps processed <= total by raising a total that turned out too small.
func (r *Run) clampLocked() {
	if r.record.ItemsTotal != nil && r.record.ItemsProcessed > *r.record.ItemsTotal {
		total := r.record.ItemsProcessed
		r.record.ItemsTotal = &total
	}
}

func (r *Run) Snapshot() domain.JobRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.record
}

func (r *Run) Result() Result {
	snap := r.Snapshot()
	result := Result{RunID: snap.ID, Processed: snap.ItemsProcessed, Failed: snap.ItemsFailed}
	if snap.ItemsTotal != nil {
		result.Total = *snap.ItemsTotal
	}
	return result
}

func (r *Run) persist() {
	snap := r.Snapshot()
	if err := r.store.UpdateProgress(r.ctx, &snap); err != nil {
		r.log.Warn("failed to persist job progress", zap.Error(err))
	}
}

func (r *Run) Infof(format string, args ...any) {
	r.write(LevelInfo, fmt.Sprintf(format, args...))
}

func (r *Run) Warnf(format string, args ...any) {
	r.write(LevelWarn, fmt.Sprintf(format, args...))
}

func (r *Run) Errorf(format string, args ...any) {
	r.write(LevelError, fmt.Sprintf(format, args...))
}

func (r *Run) write(level, message string) {
	switch level {
	case LevelWarn:
		r.log.Warn(message)
	case LevelError:
		r.log.Error(message)
	default:
		r.log.Info(message)
	}
	entry := &domain.JobRunLog{
		RunID:     r.record.ID,
		Level:     level,
		Message:   message,
		CreatedAt: r.clock.Now(),
	}
	if err := r.store.AddLog(r.ctx, entry); err != nil {
		r.log.Warn("failed to persist job log", zap.Error(err))
	}
}

func (r *Run) finish(status domain.JobStatus, cause error) error {
	r.mu.Lock()
	ended := r.clock.Now()
	r.record.Status = status
	r.record.EndedAt = &ended
	if cause != nil {
		msg := cause.Error()
		if len(msg) > maxErrorMessage {
			msg = msg[:maxErrorMessage]
		}
		r.record.ErrorMessage = &msg
	}
	snap := r.record
	r.mu.Unlock()

	return r.store.Finish(r.ctx, &snap)
}

func (r *Run) elapsed() time.Duration {
	snap := r.Snapshot()
	if snap.EndedAt == nil {
		return r.clock.Now().Sub(snap.StartedAt)
	}
	return snap.EndedAt.Sub(snap.StartedAt)
}
