package domain

import "time"

// Plant is a catalog entry. StockQuantity gates storefront visibility and is
// decremented inside the order placement transaction.
type Plant struct {
	ID               int64
	Name             string
	Description      string
	Price            float64
	StockQuantity    int
	Category         string
	CareInstructions string
	ImageURL         string
	CreatedAt        time.Time
}
