package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	VendorID    string `json:"vendor_id" validate:"required"`
	ProductID   string `json:"product_id" validate:"required"`
	CharityID   string `json:"charity_id" validate:"required"`
	CharityName string `json:"charity_name"`
	PostID      string `json:"post_id"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type cartSelectionRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.AddItem(c.Request().Context(), donorID, usecase.AddToCartInput{
		VendorID:    req.VendorID,
		ProductID:   req.ProductID,
		CharityID:   req.CharityID,
		CharityName: req.CharityName,
		PostID:      req.PostID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	summary, err := h.cartUseCase.List(c.Request().Context(), donorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req cartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), donorID, c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *CartHandler) UpdateSelection(c echo.Context) error {
	var req cartSelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.UpdateSelection(c.Request().Context(), donorID, c.Param("id"), *req.Selected)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.Remove(c.Request().Context(), donorID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item removed from cart",
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	removed, err := h.cartUseCase.Clear(c.Request().Context(), donorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{
		"removed": removed,
	})
}
