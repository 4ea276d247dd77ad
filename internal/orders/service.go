package orders

import (
	"context"
	"errors"

	"cardapio/internal/core"
	"cardapio/internal/restaurant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRestaurantRequired = errors.New("configure your restaurant before managing orders")
	ErrInvalidStatus      = errors.New("invalid order status")
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	logger      *zap.Logger
}

func NewService(repo Repository, restaurants core.RestaurantReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, restaurants: restaurants, logger: logger}
}

// RestaurantID returns the id of the owner's restaurant, or
// ErrRestaurantRequired when it is not configured yet.
func (s *Service) RestaurantID(ctx context.Context, ownerID string) (string, error) {
	res, err := s.restaurants.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return "", ErrRestaurantRequired
		}
		return "", err
	}
	return res.ID, nil
}

// List returns the orders of the owner's restaurant, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Order, error) {
	restaurantID, err := s.RestaurantID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *Service) ListForRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, orderID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	// ids are uuids; anything else cannot name an order
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrNotFound
	}

	restaurantID, err := s.RestaurantID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.UpdateStatus(ctx, restaurantID, orderID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", o.ID),
		zap.String("restaurant_id", restaurantID),
		zap.String("status", string(status)),
	)
	return o, nil
}
