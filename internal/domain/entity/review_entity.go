package entity

import "time"

// Review is a 1-5 rating a user leaves on a product. Creating or deleting
// one triggers a recompute of the product's rating aggregates.
type Review struct {
	ID        string
	Title     string
	Ratings   int
	UserID    string
	ProductID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
