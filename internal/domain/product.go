package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, matching the existing wire format.
	decimal.MarshalJSONWithoutQuotes = true
}

// PlaceholderImageURL is used when a listing is created without an image.
const PlaceholderImageURL = "/api/placeholder/300/200"

// Product is a listing offered for sale by exactly one user.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	SellerID    string          `json:"sellerId"`
	CreatedAt   time.Time       `json:"createdAt"`
}
