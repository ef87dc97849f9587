package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// PlantInput carries the plant form fields.
type PlantInput struct {
	Name             string
	Description      string
	Price            float64
	StockQuantity    int
	Category         string
	CareInstructions string
	ImageURL         string
}

// CatalogService manages the plant catalog for both storefront and back
// office.
type CatalogService struct {
	plants repository.PlantRepository
}

// NewCatalogService builds the service.
func NewCatalogService(plants repository.PlantRepository) *CatalogService {
	return &CatalogService{plants: plants}
}

// Storefront returns only plants with stock remaining.
func (s *CatalogService) Storefront(ctx context.Context) ([]domain.Plant, error) {
	return s.plants.ListInStock(ctx)
}

// AdminList returns every plant including sold-out entries.
func (s *CatalogService) AdminList(ctx context.Context) ([]domain.Plant, error) {
	return s.plants.ListAll(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Plant, error) {
	plant, err := s.plants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plant", nil)
		}
		return nil, err
	}
	return plant, nil
}

func (s *CatalogService) Search(ctx context.Context, term string) ([]domain.Plant, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.plants.ListInStock(ctx)
	}
	return s.plants.Search(ctx, term)
}

func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Plant, error) {
	return s.plants.ListByCategory(ctx, category)
}

func (s *CatalogService) Create(ctx context.Context, input PlantInput) (*domain.Plant, error) {
	if err := validatePlantInput(input); err != nil {
		return nil, err
	}
	plant := &domain.Plant{
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		StockQuantity:    input.StockQuantity,
		Category:         input.Category,
		CareInstructions: input.CareInstructions,
		ImageURL:         input.ImageURL,
	}
	if err := s.plants.Create(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, input PlantInput) (*domain.Plant, error) {
	if err := validatePlantInput(input); err != nil {
		return nil, err
	}
	plant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plant.Name = input.Name
	plant.Description = input.Description
	plant.Price = input.Price
	plant.StockQuantity = input.StockQuantity
	plant.Category = input.Category
	plant.CareInstructions = input.CareInstructions
	plant.ImageURL = input.ImageURL

	if err := s.plants.Update(ctx, plant); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("plant", nil)
		}
		return nil, err
	}
	return plant, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.plants.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("plant", nil)
		}
		return err
	}
	return nil
}

func validatePlantInput(input PlantInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("plant name is required", nil)
	}
	if input.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative", nil)
	}
	if input.StockQuantity < 0 {
		return apperrors.NewValidationError("stock quantity cannot be negative", nil)
	}
	return nil
}
