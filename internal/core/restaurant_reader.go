package core

import (
	"context"

	"cardapio/internal/restaurant"
)

// RestaurantReader resolves the restaurant configured by an owner. It
// returns restaurant.ErrNotFound when the owner has none yet.
type RestaurantReader interface {
	GetByOwner(ctx context.Context, ownerID string) (*restaurant.Restaurant, error)
}
