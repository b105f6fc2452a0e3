package session

import (
	"sync"
)

// subscriberBuffer is how many pending messages a slow subscriber may queue before
// it is dropped.
const subscriberBuffer = 16

// Subscriber receives the messages published to one session.
type Subscriber struct {
	sessionID string
	out       chan []byte
	once      sync.Once
}

// C returns the message channel. It is closed when the subscriber is removed.
func (s *Subscriber) C() <-chan []byte {
	return s.out
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.out) })
}

// Hub fans session updates out to realtime subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscriber]struct{})}
}

// Subscribe registers a subscriber for sessionID. Any initial messages are queued
// before the subscriber can receive published ones.
func (h *Hub) Subscribe(sessionID string, initial ...[]byte) *Subscriber {
	sub := &Subscriber{sessionID: sessionID, out: make(chan []byte, subscriberBuffer+len(initial))}
	for _, msg := range initial {
		sub.out <- msg
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[sessionID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Unsubscribe removes sub and closes its channel. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) removeLocked(sub *Subscriber) {
	if set, ok := h.subs[sub.sessionID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.sessionID)
		}
	}
	sub.close()
}

// Publish delivers payload to every subscriber of sessionID without blocking.
// Subscribers whose buffer is full are dropped. It returns the number of deliveries.
func (h *Hub) Publish(sessionID string, payload []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for sub := range h.subs[sessionID] {
		select {
		case sub.out <- payload:
			delivered++
		default:
			h.removeLocked(sub)
		}
	}
	return delivered
}

// Count returns the number of subscribers of sessionID.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
