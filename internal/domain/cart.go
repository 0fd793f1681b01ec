package domain

import "time"

// CartItem is a pending intent to buy Quantity units of one product.
// At most one item exists per (user, product) pair; repeat adds bump
// the quantity instead of creating a second line.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}
