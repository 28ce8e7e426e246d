package entity

import "time"

// Coupon grants a percentage discount on a cart total until it expires.
type Coupon struct {
	ID        string
	Name      string
	Discount  float64 // percent, 0-100
	Expire    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the coupon can no longer be applied at now.
func (c *Coupon) Expired(now time.Time) bool {
	return !c.Expire.After(now)
}
