package realtime

import (
	"io"
	"log"
	"sync"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
)

// Event names pushed to connected storefront/admin clients.
const (
	EventSweetCreated = "sweet_created"
	EventSweetUpdated = "sweet_updated"
	EventSweetDeleted = "sweet_deleted"
	EventStockChanged = "stock_changed"
	EventLowStock     = "low_stock"
	EventOutOfStock   = "out_of_stock"
)

// Event is one message fanned out to every subscriber.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans events out to subscribers. Publish never blocks: a subscriber that
// cannot keep up loses events rather than stalling the publisher.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{subs: make(map[chan Event]struct{}), logger: logger}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber, dropping it for
// subscribers with a full buffer.
func (h *Hub) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Printf("realtime: dropped %s for slow subscriber", name)
		}
	}
}

// PublishStock emits the stock-changed event for a sweet and, when the new
// level crosses the configured thresholds, the low-stock or out-of-stock
// signal as well.
func PublishStock(h *Hub, s *domain.Sweet) {
	if h == nil || s == nil {
		return
	}
	h.Publish(EventStockChanged, map[string]any{
		"sweetId":    s.SweetID,
		"name":       s.Name,
		"stockGrams": s.StockGrams,
	})
	switch {
	case s.StockGrams <= 0:
		h.Publish(EventOutOfStock, map[string]any{"sweetId": s.SweetID, "name": s.Name})
	case s.StockGrams <= s.LowStockThresholdGrams:
		h.Publish(EventLowStock, map[string]any{
			"sweetId":    s.SweetID,
			"name":       s.Name,
			"stockGrams": s.StockGrams,
			"threshold":  s.LowStockThresholdGrams,
		})
	}
}
