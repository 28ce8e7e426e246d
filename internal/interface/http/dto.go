package http

import (
	"time"

	"github.com/gocommerce/shop-api/internal/domain/entity"
)

// JSON views of the domain entities. Password hashes and reset-code state
// never leave through these.

type userView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	ProfileImg string    `json:"profile_img,omitempty"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:         u.ID,
		Name:       u.Name,
		Slug:       u.Slug,
		Email:      u.Email,
		Phone:      u.Phone,
		ProfileImg: u.ProfileImg,
		Role:       string(u.Role),
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
	}
}

func toUserViews(users []entity.User) []userView {
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, toUserView(&users[i]))
	}
	return out
}

type authView struct {
	User        userView  `json:"user"`
	Token       string    `json:"token"`
	TokenExpiry time.Time `json:"token_expiry"`
}

type productView struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	PriceAfterDiscount float64   `json:"price_after_discount,omitempty"`
	ImageCover         string    `json:"image_cover,omitempty"`
	Quantity           int       `json:"quantity"`
	Sold               int       `json:"sold"`
	RatingsAverage     float64   `json:"ratings_average"`
	RatingsQuantity    int       `json:"ratings_quantity"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toProductView(p *entity.Product) productView {
	return productView{
		ID:                 p.ID,
		Title:              p.Title,
		Slug:               p.Slug,
		Description:        p.Description,
		Price:              p.Price,
		PriceAfterDiscount: p.PriceAfterDiscount,
		ImageCover:         p.ImageCover,
		Quantity:           p.Quantity,
		Sold:               p.Sold,
		RatingsAverage:     p.RatingsAverage,
		RatingsQuantity:    p.RatingsQuantity,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProductViews(products []entity.Product) []productView {
	out := make([]productView, 0, len(products))
	for i := range products {
		out = append(out, toProductView(&products[i]))
	}
	return out
}

type cartItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Price     float64 `json:"price"`
}

type cartView struct {
	ID                      string         `json:"id"`
	UserID                  string         `json:"user_id"`
	Items                   []cartItemView `json:"items"`
	TotalCartPrice          float64        `json:"total_cart_price"`
	TotalPriceAfterDiscount *float64       `json:"total_price_after_discount,omitempty"`
}

func toCartView(c *entity.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemView{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Color: it.Color, Price: it.Price})
	}
	return cartView{
		ID:                      c.ID,
		UserID:                  c.UserID,
		Items:                   items,
		TotalCartPrice:          c.TotalCartPrice,
		TotalPriceAfterDiscount: c.TotalPriceAfterDiscount,
	}
}

type orderItemView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Price     float64 `json:"price"`
}

type orderView struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	Items             []orderItemView        `json:"items"`
	ShippingAddress   entity.ShippingAddress `json:"shipping_address"`
	TotalOrderPrice   float64                `json:"total_order_price"`
	PaymentMethodType string                 `json:"payment_method_type"`
	IsPaid            bool                   `json:"is_paid"`
	PaidAt            *time.Time             `json:"paid_at,omitempty"`
	IsDelivered       bool                   `json:"is_delivered"`
	DeliveredAt       *time.Time             `json:"delivered_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

func toOrderView(o *entity.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemView{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, Color: it.Color, Price: it.Price})
	}
	return orderView{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             items,
		ShippingAddress:   o.ShippingAddress,
		TotalOrderPrice:   o.TotalOrderPrice,
		PaymentMethodType: string(o.PaymentMethodType),
		IsPaid:            o.IsPaid,
		PaidAt:            o.PaidAt,
		IsDelivered:       o.IsDelivered,
		DeliveredAt:       o.DeliveredAt,
		CreatedAt:         o.CreatedAt,
	}
}

func toOrderViews(orders []entity.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderView(&orders[i]))
	}
	return out
}

type reviewView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Title     string    `json:"title,omitempty"`
	Ratings   int       `json:"ratings"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewView(rv *entity.Review) reviewView {
	return reviewView{
		ID:        rv.ID,
		UserID:    rv.UserID,
		ProductID: rv.ProductID,
		Title:     rv.Title,
		Ratings:   rv.Ratings,
		CreatedAt: rv.CreatedAt,
	}
}

func toReviewViews(reviews []entity.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewView(&reviews[i]))
	}
	return out
}

type couponView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Discount float64   `json:"discount"`
	Expire   time.Time `json:"expire"`
}

func toCouponView(c *entity.Coupon) couponView {
	return couponView{ID: c.ID, Name: c.Name, Discount: c.Discount, Expire: c.Expire}
}

func toCouponViews(coupons []entity.Coupon) []couponView {
	out := make([]couponView, 0, len(coupons))
	for i := range coupons {
		out = append(out, toCouponView(&coupons[i]))
	}
	return out
}
