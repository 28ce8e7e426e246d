package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/pkg/response"
)

// fail maps application errors onto HTTP statuses and writes the error
// envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrIncorrectCredentials),
		errors.Is(err, application.ErrAccountDeactivated):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrProductNotFound),
		errors.Is(err, application.ErrCartNotFound),
		errors.Is(err, application.ErrCartItemNotFound),
		errors.Is(err, application.ErrCouponNotFound),
		errors.Is(err, application.ErrReviewNotFound),
		errors.Is(err, application.ErrOrderNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrDuplicateEmail),
		errors.Is(err, application.ErrProductExists),
		errors.Is(err, application.ErrCouponExists),
		errors.Is(err, application.ErrAlreadyReviewed),
		errors.Is(err, application.ErrInsufficientStock):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrPasswordMismatch),
		errors.Is(err, application.ErrInvalidOrExpiredCode),
		errors.Is(err, application.ErrResetNotVerified),
		errors.Is(err, application.ErrCouponInvalid):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrDeliveryFailed):
		response.Error[any](c, http.StatusBadGateway, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
