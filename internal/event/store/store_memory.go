package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	consentmodels "consentd/internal/consent/models"
	"consentd/internal/event/models"
	id "consentd/pkg/domain"
)

// InMemoryStore keeps events in per-user slices guarded by a mutex. The
// sequence counter is assigned under the same lock, which gives the same
// append-time total order the BIGSERIAL column provides in Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	byUser  map[id.UserID][]*models.Event
	nextSeq int64
}

// NewInMemory constructs an empty in-memory event store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byUser: make(map[id.UserID][]*models.Event)}
}

func (s *InMemoryStore) Create(_ context.Context, event *models.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	event.Seq = s.nextSeq
	s.byUser[event.UserID] = append(s.byUser[event.UserID], copyEvent(event))
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]*models.Event, 0, len(s.byUser[userID]))
	for _, e := range s.byUser[userID] {
		events = append(events, copyEvent(e))
	}
	sortEvents(events)
	return events, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, events := range s.byUser {
		count += len(events)
	}
	return count, nil
}

func (s *InMemoryStore) ListPage(_ context.Context, limit, offset int) ([]*models.Event, error) {
	s.mu.RLock()
	all := []*models.Event{}
	for _, events := range s.byUser {
		for _, e := range events {
			all = append(all, copyEvent(e))
		}
	}
	s.mu.RUnlock()

	sortEvents(all)
	if offset >= len(all) {
		return []*models.Event{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *InMemoryStore) DeleteByUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

func sortEvents(events []*models.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].Seq < events[j].Seq
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
}

func copyEvent(e *models.Event) *models.Event {
	cp := *e
	cp.Assertions = append([]consentmodels.Assertion{}, e.Assertions...)
	return &cp
}
