package scheduler

import (
	"context"
	"time"

	"github.com/GlebRadaev/gamehost/internal/queue"
)

type Config struct {
	// StartupDelay is how long Start waits before running every cron job once.
	StartupDelay time.Duration
	// AllowList limits Trigger to these cron jobs. Empty allows every cron job.
	AllowList  []string
	PopTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		StartupDelay: 5 * time.Second,
		PopTimeout:   2 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.StartupDelay < 0 {
		c.StartupDelay = defaults.StartupDelay
	}
	if c.PopTimeout <= 0 {
		c.PopTimeout = defaults.PopTimeout
	}
	return c
}

// WorkerOptions tune a queue job. Items of one job run one at a time.
type WorkerOptions struct {
	// Attempts bounds tries of one item inside a single run.
	Attempts int
	// Backoff is multiplied by the attempt number between tries.
	Backoff time.Duration
	// Retryable decides whether a failed attempt is worth repeating. Nil retries every error.
	Retryable func(error) bool
	// OnExhausted is called once an item has failed for good.
	OnExhausted func(ctx context.Context, item queue.Item, err error)
}

func (o WorkerOptions) withDefaults() WorkerOptions {
	if o.Attempts <= 0 {
		o.Attempts = 1
	}
	if o.Backoff < 0 {
		o.Backoff = 0
	}
	return o
}
