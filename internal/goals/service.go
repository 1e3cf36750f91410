package goals

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"goalsort/internal/domain"
	"goalsort/internal/eventbus"
	"goalsort/internal/store"
)

// Service applies goal requests from the bus to a store and publishes the
// resulting list.
type Service struct {
	bus   eventbus.EventBus
	store store.GoalStore
	ctx   context.Context

	// Keeps each change and its GoalsChanged publish together.
	mu    sync.Mutex
	unsub []func()
}

// NewService creates a goal service that subscribes to goal requests
func NewService(ctx context.Context, bus eventbus.EventBus, s store.GoalStore) *Service {
	svc := &Service{bus: bus, store: s, ctx: ctx}

	svc.unsub = append(svc.unsub,
		bus.Subscribe(eventbus.EventGoalAddRequested, svc.handleAdd),
		bus.Subscribe(eventbus.EventGoalRemoveRequested, svc.handleRemove),
		bus.Subscribe(eventbus.EventGoalMoveRequested, svc.handleMove),
	)
	return svc
}

// Stop unsubscribes the service from the bus
func (s *Service) Stop() {
	for _, u := range s.unsub {
		u()
	}
	s.unsub = nil
}

// Goals returns the current list
func (s *Service) Goals() ([]domain.Goal, error) {
	return s.store.List(s.ctx)
}

// Seed adds n goals named "Task id N" when the store is empty, then
// publishes the list.
func (s *Service) Seed(ctx context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	if len(existing) == 0 {
		for i := 0; i < n; i++ {
			if _, err := s.store.Add(ctx, fmt.Sprintf("Task id %d", i)); err != nil {
				return fmt.Errorf("failed to seed goal %d: %w", i, err)
			}
		}
	}
	s.publishLocked(ctx)
	return nil
}

func (s *Service) handleAdd(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.GoalAddRequestedEvent)
	if !ok {
		return
	}
	s.apply("add goal", func(ctx context.Context) error {
		_, err := s.store.Add(ctx, event.Task)
		return err
	})
}

func (s *Service) handleRemove(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.GoalRemoveRequestedEvent)
	if !ok {
		return
	}
	s.apply("remove goal", func(ctx context.Context) error {
		return s.store.Remove(ctx, event.ID)
	})
}

func (s *Service) handleMove(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.GoalMoveRequestedEvent)
	if !ok {
		return
	}
	s.apply("move goal", func(ctx context.Context) error {
		return s.store.Move(ctx, event.ID, event.InFrontOfID)
	})
}

func (s *Service) apply(what string, op func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(s.ctx); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("goals: %s: %v, ignoring", what, err)
			return
		}
		log.Printf("goals: %s failed: %v", what, err)
		s.bus.Publish(eventbus.ErrorEvent{Message: "Failed to " + what, Err: err})
		return
	}
	s.publishLocked(s.ctx)
}

func (s *Service) publishLocked(ctx context.Context) {
	list, err := s.store.List(ctx)
	if err != nil {
		log.Printf("goals: list failed: %v", err)
		s.bus.Publish(eventbus.ErrorEvent{Message: "Failed to list goals", Err: err})
		return
	}
	s.bus.Publish(eventbus.GoalsChangedEvent{Goals: list})
}
