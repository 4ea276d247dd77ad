package restaurant

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("restaurant not found")
	ErrAlreadyExists = errors.New("owner already has a restaurant")
)

type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (*Restaurant, error)
	// Create inserts the restaurant and grants its owner the
	// restaurant_owner role atomically. It returns ErrAlreadyExists when the
	// owner already has one.
	Create(ctx context.Context, r *Restaurant) error
	Update(ctx context.Context, r *Restaurant) error
	SetLogo(ctx context.Context, restaurantID, logoURL string) error
}

// RoleGranter records a role for a user.
type RoleGranter interface {
	Grant(ctx context.Context, userID, role string) error
}
