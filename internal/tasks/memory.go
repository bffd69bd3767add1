package tasks

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used in tests and local runs without
// a database. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Task

	// Now is the clock used for created_at/updated_at. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[int64]Task),
		Now:    time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	task.ID = s.nextID
	s.nextID++
	task.CreatedAt = now
	task.UpdatedAt = now
	s.items[task.ID] = *task
	return nil
}

func (s *MemoryStore) ByID(_ context.Context, id int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.items[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return task, nil
}

func (s *MemoryStore) Update(_ context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.items[task.ID]
	if !ok {
		return ErrNotFound
	}
	task.CreatedAt = stored.CreatedAt
	task.UpdatedAt = s.Now()
	s.items[task.ID] = *task
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID int64) ([]Task, error) {
	return s.filter(func(t Task) bool { return t.OwnerID == ownerID }, byCreatedDesc), nil
}

func (s *MemoryStore) ListByOwnerAndStatus(_ context.Context, ownerID int64, status Status) ([]Task, error) {
	return s.filter(func(t Task) bool {
		return t.OwnerID == ownerID && t.Status == status
	}, byCreatedDesc), nil
}

func (s *MemoryStore) ListByOwnerAndCategory(_ context.Context, ownerID int64, category Category) ([]Task, error) {
	return s.filter(func(t Task) bool {
		return t.OwnerID == ownerID && t.Category == category
	}, byCreatedDesc), nil
}

func (s *MemoryStore) ListDueBefore(_ context.Context, ownerID int64, before time.Time) ([]Task, error) {
	return s.filter(func(t Task) bool {
		return t.OwnerID == ownerID && t.Deadline != nil && t.Deadline.Before(before)
	}, byDeadlineAsc), nil
}

func (s *MemoryStore) filter(keep func(Task) bool, less func(a, b Task) bool) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Task
	for _, t := range s.items {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byCreatedDesc(a, b Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func byDeadlineAsc(a, b Task) bool {
	if !a.Deadline.Equal(*b.Deadline) {
		return a.Deadline.Before(*b.Deadline)
	}
	return a.ID < b.ID
}
