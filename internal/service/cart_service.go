package service

import (
	"context"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/repository"
)

// CartService wraps the cart store. Input-range validation beyond the
// qty<=0 removal rule is the caller's responsibility.
type CartService struct {
	cart repository.CartRepository
}

// NewCartService builds the service.
func NewCartService(cart repository.CartRepository) *CartService {
	return &CartService{cart: cart}
}

// Add merges the quantity into an existing line or creates one.
func (s *CartService) Add(ctx context.Context, userID, plantID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.cart.AddItem(ctx, userID, plantID, quantity)
}

// Get returns the cart lines priced at current catalog values.
func (s *CartService) Get(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	return s.cart.GetCart(ctx, userID)
}

// Total is the sum of quantity times current price; 0 for an empty cart.
func (s *CartService) Total(ctx context.Context, userID int64) (float64, error) {
	return s.cart.GetCartTotal(ctx, userID)
}

// UpdateQuantity overwrites the line quantity; zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, plantID int64, quantity int) error {
	return s.cart.UpdateQuantity(ctx, userID, plantID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, plantID int64) error {
	return s.cart.RemoveItem(ctx, userID, plantID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cart.ClearCart(ctx, userID)
}

// Count feeds the cart badge on rendered pages; non-customers always see 0.
func (s *CartService) Count(ctx context.Context, identity domain.Identity) int {
	if identity.Role != domain.RoleCustomer {
		return 0
	}
	count, err := s.cart.Count(ctx, identity.ID)
	if err != nil {
		return 0
	}
	return count
}
