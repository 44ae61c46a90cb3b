package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/queue"
)

type memStore struct {
	mu      sync.Mutex
	runs    map[string]domain.JobRun
	order   []string
	logs    []domain.JobRunLog
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{runs: make(map[string]domain.JobRun)}
}

func (s *memStore) Create(_ context.Context, run *domain.JobRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	s.order = append(s.order, run.ID)
	return nil
}

func (s *memStore) UpdateProgress(_ context.Context, run *domain.JobRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.runs[run.ID]
	if !ok || stored.Status != domain.JobStatusRunning {
		return nil
	}
	stored.ItemsProcessed = run.ItemsProcessed
	stored.ItemsTotal = run.ItemsTotal
	stored.ItemsFailed = run.ItemsFailed
	s.runs[run.ID] = stored
	return nil
}

func (s *memStore) Finish(_ context.Context, run *domain.JobRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.runs[run.ID]
	if !ok || stored.Status != domain.JobStatusRunning {
		return nil
	}
	s.runs[run.ID] = *run
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *memStore) CloseStale(_ context.Context, now time.Time, message string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	closed := 0
	for id, run := range s.runs {
		if run.Status != domain.JobStatusRunning {
			continue
		}
		run.Status = domain.JobStatusFailed
		run.EndedAt = &now
		run.ErrorMessage = &message
		s.runs[id] = run
		closed++
	}
	return closed, nil
}

func (s *memStore) AddLog(_ context.Context, entry *domain.JobRunLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = len(s.logs) + 1
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *memStore) Latest(_ context.Context) ([]domain.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest := make(map[string]domain.JobRun)
	for _, id := range s.order {
		run, ok := s.runs[id]
		if !ok {
			continue
		}
		latest[run.JobType] = run
	}
	runs := make([]domain.JobRun, 0, len(latest))
	for _, run := range latest {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].JobType < runs[j].JobType })
	return runs, nil
}

func (s *memStore) ListByType(_ context.Context, jobType string, limit int) ([]domain.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var runs []domain.JobRun
	for i := len(s.order) - 1; i >= 0 && len(runs) < limit; i-- {
		run, ok := s.runs[s.order[i]]
		if ok && run.JobType == jobType {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (s *memStore) FindByID(_ context.Context, id string) (*domain.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (s *memStore) Logs(_ context.Context, runID string) ([]domain.JobRunLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var logs []domain.JobRunLog
	for _, entry := range s.logs {
		if entry.RunID == runID {
			logs = append(logs, entry)
		}
	}
	return logs, nil
}

func (s *memStore) all() []domain.JobRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	var runs []domain.JobRun
	for _, id := range s.order {
		if run, ok := s.runs[id]; ok {
			runs = append(runs, run)
		}
	}
	return runs
}

type memQueue struct {
	mu         sync.Mutex
	lists      map[string]chan queue.Item
	processing map[string][]queue.Item
}

func newMemQueue() *memQueue {
	return &memQueue{
		lists:      make(map[string]chan queue.Item),
		processing: make(map[string][]queue.Item),
	}
}

func (q *memQueue) list(name string) chan queue.Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch, ok := q.lists[name]
	if !ok {
		ch = make(chan queue.Item, 64)
		q.lists[name] = ch
	}
	return ch
}

func (q *memQueue) Push(_ context.Context, name string, item queue.Item) error {
	select {
	case q.list(name) <- item:
		return nil
	default:
		return errors.New("queue full")
	}
}

func (q *memQueue) Pop(ctx context.Context, name string, timeout time.Duration) (*queue.Item, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case item := <-q.list(name):
		q.mu.Lock()
		q.processing[name] = append(q.processing[name], item)
		q.mu.Unlock()
		return &item, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *memQueue) take(name, id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.processing[name]
	for i, item := range items {
		if item.ID == id {
			q.processing[name] = append(items[:i:i], items[i+1:]...)
			return
		}
	}
}

func (q *memQueue) Ack(_ context.Context, name string, item queue.Item) error {
	q.take(name, item.ID)
	return nil
}

func (q *memQueue) Release(ctx context.Context, name string, item queue.Item) error {
	q.take(name, item.ID)
	return q.Push(ctx, name, item)
}

func (q *memQueue) Recover(ctx context.Context, name string) (int, error) {
	q.mu.Lock()
	items := q.processing[name]
	delete(q.processing, name)
	q.mu.Unlock()
	for _, item := range items {
		if err := q.Push(ctx, name, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

// reserve leaves an item in the processing list as a crashed process would.
func (q *memQueue) reserve(name string, item queue.Item) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processing[name] = append(q.processing[name], item)
}

func (q *memQueue) size(name string) int {
	return len(q.list(name))
}

func (q *memQueue) inFlight(name string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.processing[name])
}
