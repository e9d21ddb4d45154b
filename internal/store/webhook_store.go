package store

import (
	"sync"

	"github.com/onurcolak/blast-tracker/internal/domain"
)

const DefaultCapacity = 100

// WebhookStore keeps the most recent webhook events in memory. It is a fixed
// capacity ring: once full, each Append overwrites the oldest event. Nothing
// survives a restart.
type WebhookStore struct {
	mu     sync.RWMutex
	events []domain.WebhookEvent
	next   int
	size   int
}

func NewWebhookStore(capacity int) *WebhookStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &WebhookStore{
		events: make([]domain.WebhookEvent, capacity),
	}
}

func (s *WebhookStore) Append(event domain.WebhookEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[s.next] = event
	s.next = (s.next + 1) % len(s.events)
	if s.size < len(s.events) {
		s.size++
	}
}

// List returns a copy of the stored events, newest first.
func (s *WebhookStore) List() []domain.WebhookEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	capacity := len(s.events)
	out := make([]domain.WebhookEvent, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.events[(s.next-1-i+capacity)%capacity]
	}
	return out
}

func (s *WebhookStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.events)
	s.next = 0
	s.size = 0
}

func (s *WebhookStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *WebhookStore) Capacity() int {
	return len(s.events)
}
