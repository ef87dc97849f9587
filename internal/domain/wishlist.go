package domain

import "time"

// WishlistEntry is a saved plant joined with its catalog data.
type WishlistEntry struct {
	UserID    int64
	Plant     Plant
	AddedDate time.Time
}
