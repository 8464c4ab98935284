package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type vendorProfileRequest struct {
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
}

type charityProfileRequest struct {
	Name        string   `json:"name"`
	Mission     string   `json:"mission"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Website     string   `json:"website" validate:"omitempty,url"`
	LogoURL     string   `json:"logo_url" validate:"omitempty,url"`
	Categories  []string `json:"categories"`
}

func (h *ProfileHandler) GetVendorProfile(c echo.Context) error {
	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.profileUseCase.GetVendorProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *ProfileHandler) UpdateVendorProfile(c echo.Context) error {
	var req vendorProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	vendor, err := h.profileUseCase.UpdateVendorProfile(c.Request().Context(), uid, usecase.VendorProfileInput{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address:      req.Address,
		Category:     req.Category,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *ProfileHandler) GetCharityProfile(c echo.Context) error {
	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	charity, err := h.profileUseCase.GetCharityProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, charity)
}

func (h *ProfileHandler) UpdateCharityProfile(c echo.Context) error {
	var req charityProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	charity, err := h.profileUseCase.UpdateCharityProfile(c.Request().Context(), uid, usecase.CharityProfileInput{
		Name:        req.Name,
		Mission:     req.Mission,
		Description: req.Description,
		Location:    req.Location,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		Categories:  req.Categories,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, charity)
}

// GetPublicCharity serves the profile donors see. No authentication.
func (h *ProfileHandler) GetPublicCharity(c echo.Context) error {
	charity, err := h.profileUseCase.GetPublicCharity(c.Request().Context(), c.Param("charityId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, charity)
}
