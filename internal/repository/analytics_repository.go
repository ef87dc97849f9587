package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// AnalyticsRepository persists growth measurements.
type AnalyticsRepository interface {
	Create(ctx context.Context, m *domain.GrowthMeasurement) error
	ListByCaretaker(ctx context.Context, caretakerID int64) ([]domain.GrowthMeasurement, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository instantiates the repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Create(ctx context.Context, m *domain.GrowthMeasurement) error {
	const query = `
        INSERT INTO plant_analytics
            (plant_name, caretaker_id, height_cm, width_cm, leaf_count, stem_diameter_mm,
             leaf_color, leaf_condition, sunlight_hours, temperature_celsius,
             humidity_percent, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, measured_at`
	return r.pool.QueryRow(ctx, query,
		m.PlantName,
		m.CaretakerID,
		m.HeightCm,
		m.WidthCm,
		m.LeafCount,
		m.StemDiameterMm,
		m.LeafColor,
		m.LeafCondition,
		m.SunlightHours,
		m.TemperatureCels,
		m.HumidityPercent,
		m.Notes,
	).Scan(&m.ID, &m.MeasuredAt)
}

func (r *analyticsRepository) ListByCaretaker(ctx context.Context, caretakerID int64) ([]domain.GrowthMeasurement, error) {
	const query = `
        SELECT id, plant_name, caretaker_id, height_cm, width_cm, leaf_count, stem_diameter_mm,
               leaf_color, leaf_condition, sunlight_hours, temperature_celsius,
               humidity_percent, notes, measured_at
        FROM plant_analytics
        WHERE caretaker_id = $1
        ORDER BY measured_at DESC`
	rows, err := r.pool.Query(ctx, query, caretakerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GrowthMeasurement
	for rows.Next() {
		var m domain.GrowthMeasurement
		if err := rows.Scan(
			&m.ID,
			&m.PlantName,
			&m.CaretakerID,
			&m.HeightCm,
			&m.WidthCm,
			&m.LeafCount,
			&m.StemDiameterMm,
			&m.LeafColor,
			&m.LeafCondition,
			&m.SunlightHours,
			&m.TemperatureCels,
			&m.HumidityPercent,
			&m.Notes,
			&m.MeasuredAt,
		); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
