package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher receives change events.
type Publisher interface {
	Publish(ev Event)
}

// InMemoryRepository keeps orders in memory and, like the database
// trigger, publishes an Event for every insert or update.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]Order
	pub    Publisher
	now    func() time.Time
}

func NewInMemoryRepository(pub Publisher) *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]Order),
		pub:    pub,
		now:    time.Now,
	}
}

// Insert stores o, filling id, status and timestamps when unset.
func (m *InMemoryRepository) Insert(o Order) Order {
	m.mu.Lock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = m.now()
	}
	o.UpdatedAt = o.CreatedAt
	m.orders[o.ID] = o
	m.mu.Unlock()

	m.publish(OpInsert, o)
	return o
}

func (m *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := []Order{}
	for _, o := range m.orders {
		if o.RestaurantID == restaurantID {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (m *InMemoryRepository) UpdateStatus(ctx context.Context, restaurantID, orderID string, status Status) (*Order, error) {
	m.mu.Lock()
	o, ok := m.orders[orderID]
	if !ok || o.RestaurantID != restaurantID {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = m.now()
	m.orders[orderID] = o
	m.mu.Unlock()

	m.publish(OpUpdate, o)
	return &o, nil
}

func (m *InMemoryRepository) publish(op string, o Order) {
	if m.pub != nil {
		m.pub.Publish(Event{Op: op, RestaurantID: o.RestaurantID, OrderID: o.ID})
	}
}
