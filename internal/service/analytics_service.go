package service

import (
	"context"
	"strings"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// AnalyticsService records and lists growth measurements.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService builds the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics}
}

// Record persists a measurement for the caretaker. Only the plant name is
// mandatory; every metric is optional.
func (s *AnalyticsService) Record(ctx context.Context, caretakerID int64, m domain.GrowthMeasurement) (*domain.GrowthMeasurement, error) {
	if strings.TrimSpace(m.PlantName) == "" {
		return nil, apperrors.NewValidationError("plant name is required", nil)
	}
	m.CaretakerID = caretakerID
	if err := s.analytics.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForCaretaker returns the caretaker's measurements, newest first.
func (s *AnalyticsService) ListForCaretaker(ctx context.Context, caretakerID int64) ([]domain.GrowthMeasurement, error) {
	return s.analytics.ListByCaretaker(ctx, caretakerID)
}
