package scheduler

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Task func()

// WorkerPool runs tasks on a fixed number of goroutines. AddTask blocks until a
// worker is free, so a queue consumer never pops more items than it can run.
type WorkerPool struct {
	pool chan Task
	wg   sync.WaitGroup
	once sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	wp := &WorkerPool{pool: make(chan Task)}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.pool {
		wp.safeRun(task)
	}
}

func (wp *WorkerPool) safeRun(task Task) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

// Close stops accepting tasks and waits for the running ones. Safe to call twice.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		close(wp.pool)
	})
	wp.wg.Wait()
}
