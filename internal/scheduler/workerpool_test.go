package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name       string
		numTasks   int
		numWorkers int
		panics     int
	}{
		{
			name:       "simple tasks",
			numTasks:   5,
			numWorkers: 2,
		},
		{
			name:       "panicking task does not kill the worker",
			numTasks:   3,
			numWorkers: 1,
			panics:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)

			var executed atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < tt.numTasks; i++ {
				wg.Add(1)
				i := i
				err := wp.AddTask(context.Background(), func() {
					defer wg.Done()
					if i < tt.panics {
						panic("boom")
					}
					time.Sleep(10 * time.Millisecond)
					executed.Add(1)
				})
				require.NoError(t, err, "failed to add task to pool")
			}

			wg.Wait()
			wp.Close()

			assert.Equal(t, int32(tt.numTasks-tt.panics), executed.Load())
		})
	}
}

func TestWorkerPool_AddTaskBlocksWhenBusy(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	release := make(chan struct{})
	require.NoError(t, wp.AddTask(context.Background(), func() { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := wp.AddTask(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestWorkerPool_CloseWaitsForTasks(t *testing.T) {
	wp := NewWorkerPool(2)

	var done atomic.Bool
	require.NoError(t, wp.AddTask(context.Background(), func() {
		time.Sleep(30 * time.Millisecond)
		done.Store(true)
	}))

	wp.Close()
	assert.True(t, done.Load())
	assert.NotPanics(t, wp.Close)
}
