package entity

import "time"

// CartItem is one priced line of a cart. Price is captured when the item is
// added so later product price changes do not move an existing cart total.
type CartItem struct {
	ID        string
	ProductID string
	Quantity  int
	Color     string
	Price     float64
}

// Cart is a user's pending, priced selection of items. It is consumed
// exactly once by a successful checkout. When TotalPriceAfterDiscount is
// non-nil it is the authoritative charge amount.
type Cart struct {
	ID                      string
	UserID                  string
	Items                   []CartItem
	TotalCartPrice          float64
	TotalPriceAfterDiscount *float64
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// ChargeAmount returns the amount a checkout must charge for this cart.
func (c *Cart) ChargeAmount() float64 {
	if c.TotalPriceAfterDiscount != nil {
		return *c.TotalPriceAfterDiscount
	}
	return c.TotalCartPrice
}

// SaleItems converts the cart lines into inventory adjustments. Lines for
// the same product in different colors collapse into one adjustment, so the
// batched stock update sees each product id at most once.
func (c *Cart) SaleItems() []SaleItem {
	pos := make(map[string]int, len(c.Items))
	items := make([]SaleItem, 0, len(c.Items))
	for _, it := range c.Items {
		if i, ok := pos[it.ProductID]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		pos[it.ProductID] = len(items)
		items = append(items, SaleItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}
