package domain

// CartLine is a cart row joined with the current plant data. Line totals
// always reflect the plant's current price; prices are frozen only when an
// order is placed.
type CartLine struct {
	UserID        int64
	PlantID       int64
	Quantity      int
	PlantName     string
	Price         float64
	ImageURL      string
	StockQuantity int
}

// Subtotal is quantity times the current price.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}
