package session

import (
	"context"
	"sync"
	"time"

	"birdcall-quiz/internal/domain"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory.
// A zero ttl keeps sessions forever; a zero maxEntries means no cap.
type MemoryStore struct {
	mu         sync.Mutex
	items      *gocache.Cache
	maxEntries int
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration, maxEntries int, cleanupInterval time.Duration) *MemoryStore {
	expiration := gocache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	} else {
		cleanupInterval = 0
	}
	return &MemoryStore{
		items:      gocache.New(expiration, cleanupInterval),
		maxEntries: maxEntries,
	}
}

// Put stores a copy of s, evicting the oldest session when the store is full.
func (m *MemoryStore) Put(_ context.Context, s *domain.QuizSession) error {
	stored := *s

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxEntries > 0 {
		if _, exists := m.items.Get(stored.QuestionID); !exists {
			m.items.DeleteExpired()
			for m.items.ItemCount() >= m.maxEntries && m.evictOldest() {
			}
		}
	}
	m.items.Set(stored.QuestionID, &stored, gocache.DefaultExpiration)
	return nil
}

// Get returns a copy of the session. Reads do not consume it.
func (m *MemoryStore) Get(_ context.Context, questionID string) (*domain.QuizSession, error) {
	v, ok := m.items.Get(questionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s := *v.(*domain.QuizSession)
	return &s, nil
}

// Len reports the number of stored sessions, expired ones included until cleanup.
func (m *MemoryStore) Len() int {
	return m.items.ItemCount()
}

// evictOldest must be called with mu held. It reports whether a session was removed.
func (m *MemoryStore) evictOldest() bool {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, item := range m.items.Items() {
		s := item.Object.(*domain.QuizSession)
		if oldestID == "" || s.CreatedAt.Before(oldestAt) {
			oldestID, oldestAt = id, s.CreatedAt
		}
	}
	if oldestID == "" {
		return false
	}
	m.items.Delete(oldestID)
	return true
}
