package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vinforge/forgedfate/internal/models"
)

const defaultSubscriberBuffer = 32

// Hub delivers events to in-process subscribers such as websocket connections.
// A subscriber that falls behind loses events instead of blocking the publisher.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan models.Event]struct{}
	buffer      int
	closed      bool
	logger      *zap.SugaredLogger
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan models.Event]struct{}),
		buffer:      defaultSubscriberBuffer,
		logger:      zap.S().Named("notify_hub"),
	}
}

// Subscribe returns the event channel and the function which releases it.
// The channel is closed on release or when the hub is closed.
func (h *Hub) Subscribe() (<-chan models.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := make(chan models.Event, h.buffer)
	if h.closed {
		close(c)
		return c, func() {}
	}
	h.subscribers[c] = struct{}{}

	var once sync.Once
	return c, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[c]; ok {
				delete(h.subscribers, c)
				close(c)
			}
		})
	}
}

func (h *Hub) Publish(_ context.Context, event models.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscribers {
		select {
		case c <- event:
		default:
			h.logger.Debugw("subscriber is slow, event dropped", "type", event.Type, "kind", event.Kind)
		}
	}
	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.subscribers {
		delete(h.subscribers, c)
		close(c)
	}
}
