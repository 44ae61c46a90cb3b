// Package queue stores job work items in Redis lists. A popped item is moved
// to a processing list and stays there until it is acked or released, so items
// held by a process that dies are recovered on the next start.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	redis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "gamehost:queue:"

type Item struct {
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`

	// raw is the exact list element, needed to remove it from the processing list.
	raw string
}

type RedisQueue struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient, prefix string) *RedisQueue {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisQueue{client: client, prefix: prefix}
}

// Connect parses a redis:// URI and checks the server answers.
func Connect(ctx context.Context, uri string) (*redis.Client, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (q *RedisQueue) key(name string) string {
	return q.prefix + name
}

func (q *RedisQueue) processingKey(name string) string {
	return q.prefix + name + ":processing"
}

func (q *RedisQueue) Push(ctx context.Context, name string, item Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode queue item: %w", err)
	}
	return q.client.LPush(ctx, q.key(name), data).Err()
}

// Pop blocks up to timeout for the oldest item and moves it to the processing
// list. It returns nil, nil when the list stayed empty.
func (q *RedisQueue) Pop(ctx context.Context, name string, timeout time.Duration) (*Item, error) {
	raw, err := q.client.BLMove(ctx, q.key(name), q.processingKey(name), "RIGHT", "LEFT", timeout).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		// Undecodable elements would be recovered forever.
		_ = q.client.LRem(ctx, q.processingKey(name), 1, raw).Err()
		return nil, fmt.Errorf("decode queue item: %w", err)
	}
	item.raw = raw
	return &item, nil
}

func (q *RedisQueue) element(item Item) (string, error) {
	if item.raw != "" {
		return item.raw, nil
	}
	data, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("encode queue item: %w", err)
	}
	return string(data), nil
}

// Ack drops a finished item from the processing list.
func (q *RedisQueue) Ack(ctx context.Context, name string, item Item) error {
	raw, err := q.element(item)
	if err != nil {
		return err
	}
	return q.client.LRem(ctx, q.processingKey(name), 1, raw).Err()
}

// Release puts an unfinished item back at the head of the queue.
func (q *RedisQueue) Release(ctx context.Context, name string, item Item) error {
	raw, err := q.element(item)
	if err != nil {
		return err
	}
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, q.processingKey(name), 1, raw)
		pipe.RPush(ctx, q.key(name), raw)
		return nil
	})
	return err
}

// Recover moves every item left in the processing list back to the head of
// the queue, oldest first. Call it before consumers start.
func (q *RedisQueue) Recover(ctx context.Context, name string) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.processingKey(name), q.key(name), "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

func (q *RedisQueue) Len(ctx context.Context, name string) (int64, error) {
	return q.client.LLen(ctx, q.key(name)).Result()
}

func (q *RedisQueue) InFlight(ctx context.Context, name string) (int64, error) {
	return q.client.LLen(ctx, q.processingKey(name)).Result()
}
