package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// InMemoryStore keeps the development and test setup lightweight. It
// intentionally favors clarity over performance.
type InMemoryStore struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]identity.User
	sessions map[string]identity.Session
	bans     map[uuid.UUID][]identity.Ban
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:    make(map[uuid.UUID]identity.User),
		sessions: make(map[string]identity.Session),
		bans:     make(map[uuid.UUID][]identity.Ban),
	}
}

func (s *InMemoryStore) CreateUser(_ context.Context, user identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) UserByID(_ context.Context, id uuid.UUID) (identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return identity.User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) TouchLastLogin(_ context.Context, id uuid.UUID, when int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	user.TimeLastLogin = when
	s.users[id] = user
	return nil
}

func (s *InMemoryStore) CreateSession(_ context.Context, session identity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *InMemoryStore) SessionByToken(_ context.Context, token string) (identity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[token]; ok {
		return session, nil
	}
	return identity.Session{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) CreateBan(_ context.Context, ban identity.Ban) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[ban.UserID] = append(s.bans[ban.UserID], ban)
	return nil
}

func (s *InMemoryStore) MostRecentBan(_ context.Context, userID uuid.UUID) (identity.Ban, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bans := s.bans[userID]
	if len(bans) == 0 {
		return identity.Ban{}, sentinel.ErrNotFound
	}
	recent := bans[0]
	for _, b := range bans[1:] {
		if b.TimeCreated > recent.TimeCreated {
			recent = b
		}
	}
	return recent, nil
}
