package entity

import "time"

// Payment method accepted at checkout.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ShippingAddress is the destination captured with an order.
type ShippingAddress struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// OrderItem is a frozen copy of a cart line at checkout time. It keeps the
// historical price and quantity even if the product changes later.
type OrderItem struct {
	ID        string
	ProductID string
	Quantity  int
	Color     string
	Price     float64
}

// Order is the durable record of a completed checkout. The item list is
// immutable after creation.
type Order struct {
	ID                string
	UserID            string
	Items             []OrderItem
	ShippingAddress   ShippingAddress
	TotalOrderPrice   float64
	PaymentMethodType PaymentMethod
	IsPaid            bool
	PaidAt            *time.Time
	IsDelivered       bool
	DeliveredAt       *time.Time
	CreatedAt         time.Time
}
