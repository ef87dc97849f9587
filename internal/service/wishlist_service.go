package service

import (
	"context"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/repository"
)

// WishlistService manages saved plants.
type WishlistService struct {
	wishlist repository.WishlistRepository
}

// NewWishlistService builds the service.
func NewWishlistService(wishlist repository.WishlistRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist}
}

// Add reports false when the plant was already saved.
func (s *WishlistService) Add(ctx context.Context, userID, plantID int64) (bool, error) {
	return s.wishlist.Add(ctx, userID, plantID)
}

// Remove reports false when the plant was not saved.
func (s *WishlistService) Remove(ctx context.Context, userID, plantID int64) (bool, error) {
	return s.wishlist.Remove(ctx, userID, plantID)
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]domain.WishlistEntry, error) {
	return s.wishlist.List(ctx, userID)
}
