// Package events fans order events out to live dashboard connections.
package events

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/edvin/shopadmin/internal/model"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 32

// Hub broadcasts order events to subscribers. A subscriber that falls
// behind loses events rather than blocking publishers.
type Hub struct {
	mu      sync.RWMutex
	subs    map[chan model.OrderEvent]struct{}
	buffer  int
	logger  zerolog.Logger
	dropped atomic.Uint64
	closed  bool
}

func NewHub(logger zerolog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[chan model.OrderEvent]struct{}),
		buffer: buffer,
		logger: logger.With().Str("component", "order-events").Logger(),
	}
}

// Subscribe registers a new listener. The returned cancel func removes it
// and closes the channel; it is safe to call more than once. After Close
// the returned channel is already closed.
func (h *Hub) Subscribe() (<-chan model.OrderEvent, func()) {
	ch := make(chan model.OrderEvent, h.buffer)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// Publish sends e to every subscriber without blocking.
func (h *Hub) Publish(e model.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.dropped.Add(1)
			h.logger.Warn().Str("order_id", e.OrderID).Str("type", e.Type).Msg("subscriber queue full, event dropped")
		}
	}
}

// Subscribers returns the number of connected listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber
// queue was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
