package restaurant

import (
	"context"
	"sync"
	"time"

	"cardapio/internal/auth"

	"github.com/google/uuid"
)

// InMemoryRepository mirrors PostgresRepository for tests. Roles granted on
// Create go to the supplied granter, if any.
type InMemoryRepository struct {
	mu      sync.Mutex
	byOwner map[string]Restaurant
	roles   RoleGranter
}

func NewInMemoryRepository(roles RoleGranter) *InMemoryRepository {
	return &InMemoryRepository{
		byOwner: make(map[string]Restaurant),
		roles:   roles,
	}
}

func (m *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) (*Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.byOwner[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (m *InMemoryRepository) Create(ctx context.Context, res *Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byOwner[res.OwnerID]; exists {
		return ErrAlreadyExists
	}
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	if m.roles != nil {
		if err := m.roles.Grant(ctx, res.OwnerID, auth.RoleRestaurantOwner); err != nil {
			return err
		}
	}
	m.byOwner[res.OwnerID] = *res
	return nil
}

func (m *InMemoryRepository) Update(ctx context.Context, res *Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for owner, existing := range m.byOwner {
		if existing.ID == res.ID {
			res.OwnerID = owner
			res.CreatedAt = existing.CreatedAt
			res.LogoURL = existing.LogoURL
			res.UpdatedAt = time.Now()
			m.byOwner[owner] = *res
			return nil
		}
	}
	return ErrNotFound
}

func (m *InMemoryRepository) SetLogo(ctx context.Context, restaurantID, logoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for owner, existing := range m.byOwner {
		if existing.ID == restaurantID {
			existing.LogoURL = &logoURL
			existing.UpdatedAt = time.Now()
			m.byOwner[owner] = existing
			return nil
		}
	}
	return ErrNotFound
}
