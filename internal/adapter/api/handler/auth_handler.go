package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type signUpRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=donor charity vendor"`
	Phone        string `json:"phone"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Category     string `json:"category"`
}

// expectedRole keeps the field name the web client already sends.
type signInRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	ExpectedRole string `json:"expectedRole" validate:"omitempty,oneof=donor charity vendor"`
}

type authResponse struct {
	User    *entity.User        `json:"user"`
	Session *entity.AuthSession `json:"session,omitempty"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.SignUp(c.Request().Context(), usecase.SignUpInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Type:         req.Type,
		Phone:        req.Phone,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		Category:     req.Category,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{User: result.User, Session: result.Session})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.SignIn(c.Request().Context(), req.Email, req.Password, req.ExpectedRole)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{User: result.User, Session: result.Session})
}

// Me returns the caller's account record.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
