// Package flash хранит одноразовые сообщения для HTML-страниц:
// сообщение показывается на следующей отрисованной странице и удаляется.
package flash

import (
	"context"
	"sync"
	"time"
)

const (
	CategoryError   = "error"
	CategorySuccess = "success"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func Error(message string) Flash {
	return Flash{Category: CategoryError, Message: message}
}

func Success(message string) Flash {
	return Flash{Category: CategorySuccess, Message: message}
}

type Store interface {
	Push(ctx context.Context, session string, f Flash) error
	// Pop возвращает сообщения сессии в порядке добавления и очищает их
	Pop(ctx context.Context, session string) ([]Flash, error)
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	flashes   []Flash
	expiresAt time.Time
}

// MemoryStore используется, когда Redis не настроен. Живёт в рамках одного процесса.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Push(_ context.Context, session string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	entry, ok := s.sessions[session]
	if !ok {
		entry = &memoryEntry{}
		s.sessions[session] = entry
	}
	entry.flashes = append(entry.flashes, f)
	entry.expiresAt = now.Add(s.ttl)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, session string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[session]
	if !ok {
		return nil, nil
	}
	delete(s.sessions, session)

	if !s.now().Before(entry.expiresAt) {
		return nil, nil
	}
	return entry.flashes, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) evictExpired(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
