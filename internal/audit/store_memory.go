package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// InMemoryHitStore backs tests and local development.
type InMemoryHitStore struct {
	mu        sync.RWMutex
	hits      map[uuid.UUID]Hit
	errors    map[uuid.UUID]SecurityErrorHit
	completed map[uuid.UUID]bool
}

func NewInMemoryHitStore() *InMemoryHitStore {
	return &InMemoryHitStore{
		hits:      make(map[uuid.UUID]Hit),
		errors:    make(map[uuid.UUID]SecurityErrorHit),
		completed: make(map[uuid.UUID]bool),
	}
}

func (s *InMemoryHitStore) InsertSecurityError(_ context.Context, rec SecurityErrorHit) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.errors[rec.ID] = rec
	return rec.ID, nil
}

func (s *InMemoryHitStore) InsertPending(_ context.Context, rec Hit) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.hits[rec.ID] = rec
	return rec.ID, nil
}

func (s *InMemoryHitStore) Complete(_ context.Context, id uuid.UUID, responseCode int, messageCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hit, ok := s.hits[id]
	if !ok || s.completed[id] {
		return sentinel.ErrNotFound
	}
	hit.ResponseCode = responseCode
	hit.MessageCode = messageCode
	s.hits[id] = hit
	s.completed[id] = true
	return nil
}

// HitByID is a test helper for inspecting the success-path records.
func (s *InMemoryHitStore) HitByID(id uuid.UUID) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hit, ok := s.hits[id]
	return hit, ok
}

// Hits returns the success-path records in arbitrary order.
func (s *InMemoryHitStore) Hits() []Hit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Hit, 0, len(s.hits))
	for _, rec := range s.hits {
		out = append(out, rec)
	}
	return out
}

// SecurityErrors returns the failure-path records in arbitrary order.
func (s *InMemoryHitStore) SecurityErrors() []SecurityErrorHit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SecurityErrorHit, 0, len(s.errors))
	for _, rec := range s.errors {
		out = append(out, rec)
	}
	return out
}
