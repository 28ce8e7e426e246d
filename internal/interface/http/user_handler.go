package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/domain/entity"
	"github.com/gocommerce/shop-api/internal/interface/middleware"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type UserHandler struct {
	Service *application.UserService
}

func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, toUserView(u), "profile", nil)
}

type updateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,phone"`
	ProfileImg *string `json:"profile_img" binding:"omitempty,url"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Service.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfileImg: req.ProfileImg,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile updated", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

// ChangeMyPassword swaps the password and returns a fresh token, since the
// old one dies with the password change.
func (h *UserHandler) ChangeMyPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Service.ChangePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, authView{
		User:        toUserView(res.User),
		Token:       res.Token,
		TokenExpiry: res.TokenExpiry,
	}, "password changed", nil)
}

// DeleteMe deactivates the caller's own account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.Service.Deactivate(c.Request.Context(), c.GetString("userID")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "account deactivated", nil)
}

// Admin operations.

func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "users", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user", nil)
}

type adminCreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,oneof=user manager admin"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req adminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Service.AdminCreate(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password, entity.Role(req.Role))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u), "user created", nil)
}

type adminUpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
	Role  *string `json:"role" binding:"omitempty,oneof=user manager admin"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	upd := application.AdminUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		upd.Role = &role
	}
	u, err := h.Service.AdminEdit(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "user updated", nil)
}

type adminSetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	var req adminSetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.AdminSetPassword(c.Request.Context(), c.Param("id"), req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

func (h *UserHandler) Activate(c *gin.Context) {
	if err := h.Service.Activate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user activated", nil)
}
