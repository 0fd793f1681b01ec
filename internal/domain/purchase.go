package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem is a snapshot of one cart line at checkout time. Price
// and title are copied from the listing so later edits or deletion of
// the product never change the receipt.
type PurchaseItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Title     string          `json:"title"`
}

// Purchase is an immutable receipt created from a cart at checkout.
type Purchase struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Items        []PurchaseItem  `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PurchaseDate time.Time       `json:"purchaseDate"`
}
