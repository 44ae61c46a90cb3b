package queue

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestQueue needs a live Redis pointed to by REDIS_URI.
func newTestQueue(t *testing.T) *RedisQueue {
	uri := os.Getenv("REDIS_URI")
	if uri == "" {
		t.Skip("REDIS_URI is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "gamehost:test:"+uuid.NewString()+":")
}

func TestRedisQueue_PushPopFIFO(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first := Item{ID: "1", Payload: json.RawMessage(`{"orderId":1}`), EnqueuedAt: time.Now().UTC()}
	second := Item{ID: "2", Payload: json.RawMessage(`{"orderId":2}`), EnqueuedAt: time.Now().UTC()}
	require.NoError(t, q.Push(ctx, "provision", first))
	require.NoError(t, q.Push(ctx, "provision", second))

	size, err := q.Len(ctx, "provision")
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	item, err := q.Pop(ctx, "provision", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)
	assert.JSONEq(t, `{"orderId":1}`, string(item.Payload))

	item, err = q.Pop(ctx, "provision", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "2", item.ID)
}

func TestRedisQueue_PopTimeout(t *testing.T) {
	q := newTestQueue(t)

	item, err := q.Pop(context.Background(), "empty", 100*time.Millisecond)

	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestRedisQueue_AckDropsProcessedItem(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, "provision", Item{ID: "1", Payload: json.RawMessage(`{"orderId":1}`)}))
	item, err := q.Pop(ctx, "provision", time.Second)
	require.NoError(t, err)

	inFlight, err := q.InFlight(ctx, "provision")
	require.NoError(t, err)
	assert.Equal(t, int64(1), inFlight)

	require.NoError(t, q.Ack(ctx, "provision", *item))
	inFlight, err = q.InFlight(ctx, "provision")
	require.NoError(t, err)
	assert.Zero(t, inFlight)
}

func TestRedisQueue_ReleaseReturnsItemToHead(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, "provision", Item{ID: "1"}))
	require.NoError(t, q.Push(ctx, "provision", Item{ID: "2"}))
	item, err := q.Pop(ctx, "provision", time.Second)
	require.NoError(t, err)
	require.Equal(t, "1", item.ID)

	require.NoError(t, q.Release(ctx, "provision", *item))

	inFlight, err := q.InFlight(ctx, "provision")
	require.NoError(t, err)
	assert.Zero(t, inFlight)
	item, err = q.Pop(ctx, "provision", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)
}

func TestRedisQueue_RecoverAfterCrash(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, q.Push(ctx, "provision", Item{ID: id}))
	}
	// Two items popped by a process that never acked them.
	for i := 0; i < 2; i++ {
		_, err := q.Pop(ctx, "provision", time.Second)
		require.NoError(t, err)
	}

	moved, err := q.Recover(ctx, "provision")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	var order []string
	for i := 0; i < 3; i++ {
		item, err := q.Pop(ctx, "provision", time.Second)
		require.NoError(t, err)
		order = append(order, item.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, order)
}

func TestConnect_BadURI(t *testing.T) {
	_, err := Connect(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestNew_DefaultPrefix(t *testing.T) {
	q := New(nil, "")
	assert.Equal(t, "gamehost:queue:provision", q.key("provision"))
	assert.Equal(t, "gamehost:queue:provision:processing", q.processingKey("provision"))
}
