package domain

import "time"

// GrowthMeasurement is one logged observation of a plant's condition. All
// numeric fields are optional; caretakers record only what they measured.
type GrowthMeasurement struct {
	ID              int64
	PlantName       string
	CaretakerID     int64
	HeightCm        *float64
	WidthCm         *float64
	LeafCount       *int
	StemDiameterMm  *float64
	LeafColor       string
	LeafCondition   string
	SunlightHours   *float64
	TemperatureCels *float64
	HumidityPercent *float64
	Notes           string
	MeasuredAt      time.Time
}
