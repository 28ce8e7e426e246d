package entity

import "time"

// Product holds catalog data plus the inventory counters (Quantity, Sold)
// and the review aggregates (RatingsAverage, RatingsQuantity) maintained by
// the checkout and review flows.
type Product struct {
	ID                 string
	Title              string
	Slug               string
	Description        string
	Price              float64
	PriceAfterDiscount float64
	ImageCover         string
	Quantity           int
	Sold               int
	RatingsAverage     float64
	RatingsQuantity    int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SaleItem is one line of an inventory reconciliation: the stock decrement
// and sold increment applied together for a product.
type SaleItem struct {
	ProductID string
	Quantity  int
}
