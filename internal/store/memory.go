package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"goalsort/internal/domain"
)

// MemoryStore is an in-memory implementation of GoalStore
type MemoryStore struct {
	mu    sync.RWMutex
	goals []domain.Goal
	now   func() time.Time
}

// NewMemoryStore creates an empty memory-based goal store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) List(ctx context.Context) ([]domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	return append([]domain.Goal(nil), s.goals...), nil
}

func (s *MemoryStore) Add(ctx context.Context, task string) (domain.Goal, error) {
	task, err := NormalizeTask(task)
	if err != nil {
		return domain.Goal{}, err
	}
	g := domain.Goal{ID: uuid.NewString(), Task: task, CreatedAt: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.goals, id)
	if i < 0 {
		return ErrNotFound
	}
	s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
	return nil
}

func (s *MemoryStore) Move(ctx context.Context, id, inFrontOfID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(s.goals))
	byID := make(map[string]domain.Goal, len(s.goals))
	for i, g := range s.goals {
		ids[i] = g.ID
		byID[g.ID] = g
	}
	order, err := reorderIDs(ids, id, inFrontOfID)
	if err != nil {
		return err
	}
	goals := make([]domain.Goal, len(order))
	for i, gid := range order {
		goals[i] = byID[gid]
	}
	s.goals = goals
	return nil
}

func (s *MemoryStore) Close() error { return nil }
