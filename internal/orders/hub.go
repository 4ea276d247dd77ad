package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Change operations carried by Event.Op.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

const defaultSubscriberBuffer = 16

// Event reports that an order of a restaurant changed. Consumers re-read
// the orders instead of applying the event as a delta.
type Event struct {
	Op           string `json:"op"`
	RestaurantID string `json:"restaurant_id"`
	OrderID      string `json:"id"`
}

// DecodeEvent parses a notification payload.
func DecodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("decode order event: %w", err)
	}
	if ev.RestaurantID == "" {
		return Event{}, fmt.Errorf("decode order event: missing restaurant_id")
	}
	return ev, nil
}

// Subscriber is the subscription side of Hub.
type Subscriber interface {
	Subscribe(ctx context.Context, restaurantID string) (<-chan Event, func())
}

type subscription struct {
	ch chan Event
}

// Hub fans events out to the subscribers of each restaurant. Delivery never
// blocks the publisher: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	buffer int
	logger *zap.Logger
}

func NewHub(buffer int, logger *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[string]map[*subscription]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers for events of restaurantID. The returned channel is
// closed by unsubscribe, which also runs when ctx is done. unsubscribe may
// be called more than once.
func (h *Hub) Subscribe(ctx context.Context, restaurantID string) (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, h.buffer)}

	h.mu.Lock()
	if h.subs[restaurantID] == nil {
		h.subs[restaurantID] = make(map[*subscription]struct{})
	}
	h.subs[restaurantID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	remove := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[restaurantID], sub)
			if len(h.subs[restaurantID]) == 0 {
				delete(h.subs, restaurantID)
			}
			close(sub.ch)
			h.mu.Unlock()
		})
	}

	stop := context.AfterFunc(ctx, remove)
	return sub.ch, func() {
		stop()
		remove()
	}
}

// Publish delivers ev to every subscriber of its restaurant.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[ev.RestaurantID] {
		select {
		case sub.ch <- ev:
		default:
			h.logger.Warn("order event dropped for slow subscriber",
				zap.String("restaurant_id", ev.RestaurantID),
				zap.String("order_id", ev.OrderID),
			)
		}
	}
}

// Subscribers returns the number of live subscriptions for restaurantID.
func (h *Hub) Subscribers(restaurantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[restaurantID])
}
