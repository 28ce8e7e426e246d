package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/pkg/response"
	"github.com/gocommerce/shop-api/pkg/validation"
)

type AuthHandler struct {
	Service *application.AuthService
}

func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Service.Signup(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, authView{
		User:        toUserView(res.User),
		Token:       res.Token,
		TokenExpiry: res.TokenExpiry,
	}, "account created", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, authView{
		User:        toUserView(res.User),
		Token:       res.Token,
		TokenExpiry: res.TokenExpiry,
	}, "logged in", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "reset code sent to email", nil)
}

type verifyResetCodeRequest struct {
	Code string `json:"code" binding:"required,resetcode"`
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req verifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.VerifyResetCode(c.Request.Context(), req.Code); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "reset code verified", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Service.ResetPassword(c.Request.Context(), req.Email, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, authView{
		User:        toUserView(res.User),
		Token:       res.Token,
		TokenExpiry: res.TokenExpiry,
	}, "password reset", nil)
}
