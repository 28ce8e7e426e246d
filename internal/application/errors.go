package application

import "errors"

// Sentinel errors returned by the application services. Handlers map these
// onto HTTP status codes.
var (
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrPasswordMismatch     = errors.New("current password is incorrect")

	ErrInvalidOrExpiredCode = errors.New("reset code invalid or expired")
	ErrResetNotVerified     = errors.New("reset code not verified")
	ErrDeliveryFailed       = errors.New("could not deliver email")

	ErrProductNotFound   = errors.New("product not found")
	ErrProductExists     = errors.New("a product with this title already exists")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponInvalid  = errors.New("coupon invalid or expired")
	ErrCouponExists   = errors.New("coupon name already exists")

	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed")

	ErrOrderNotFound = errors.New("order not found")

	ErrForbidden = errors.New("not allowed")
)
