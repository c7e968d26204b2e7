package progress

import (
	"sync"

	"github.com/google/uuid"

	"github.com/p-n-ai/codelearn/internal/platform/logger"
)

const subscriberBuffer = 16

// Subscriber receives the events published for one user.
type Subscriber struct {
	ID     string
	UserID string
	events chan Event
	once   sync.Once
}

// Events is closed when the subscriber is removed from the hub.
func (s *Subscriber) Events() <-chan Event { return s.events }

// Hub fans progress events out to live subscribers, keyed by user id.
// A subscriber that falls behind loses events rather than blocking the
// publisher.
type Hub struct {
	mu     sync.RWMutex
	log    *logger.Logger
	byUser map[string]map[*Subscriber]struct{}
}

// NewHub creates an empty hub. A nil logger uses the package default.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Default()
	}
	return &Hub{
		log:    log.With("component", "progress_hub"),
		byUser: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new subscriber for userID.
func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{
		ID:     uuid.NewString(),
		UserID: userID,
		events: make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	subs, ok := h.byUser[userID]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.byUser[userID] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	h.log.Debug("subscriber added", "subscriber_id", sub.ID, "user_id", userID)
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is safe.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if subs, ok := h.byUser[sub.UserID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.byUser, sub.UserID)
		}
	}
	h.mu.Unlock()

	sub.once.Do(func() { close(sub.events) })
	h.log.Debug("subscriber removed", "subscriber_id", sub.ID, "user_id", sub.UserID)
}

// Publish delivers e to every subscriber of e.UserID without blocking.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.byUser[e.UserID] {
		select {
		case sub.events <- e:
		default:
			h.log.Warn("dropping progress event; subscriber buffer full",
				"subscriber_id", sub.ID,
				"user_id", e.UserID,
				"type", e.Type,
			)
		}
	}
}

// Subscribers returns the number of live subscribers for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
