package orders

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// ListByRestaurant returns the restaurant's orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error)
	UpdateStatus(ctx context.Context, restaurantID, orderID string, status Status) (*Order, error)
}
