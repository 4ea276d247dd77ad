package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserRepository backs tests and local runs without Postgres.
type InMemoryUserRepository struct {
	mu        sync.RWMutex
	users     map[string]*User
	fullNames map[string]string
	roles     map[string]map[string]bool
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:     make(map[string]*User),
		fullNames: make(map[string]string),
		roles:     make(map[string]map[string]bool),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *User, fullName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// same guarantee as the users.email unique constraint
	if _, taken := r.users[user.Email]; taken {
		return ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.Email] = user
	r.fullNames[user.ID] = fullName
	return nil
}

func (r *InMemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.users[email]
	return exists, nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// FullName returns the profile name recorded at registration.
func (r *InMemoryUserRepository) FullName(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fullNames[userID]
}

func (r *InMemoryUserRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[userID][role], nil
}

func (r *InMemoryUserRepository) Grant(ctx context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.roles[userID] == nil {
		r.roles[userID] = make(map[string]bool)
	}
	r.roles[userID][role] = true
	return nil
}
