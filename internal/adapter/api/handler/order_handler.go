package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Shipped Completed Cancelled"`
}

// Checkout places orders for the donor's selected cart rows.
func (h *OrderHandler) Checkout(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	orders, err := h.orderUseCase.Checkout(c.Request().Context(), donorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, orders)
}

func (h *OrderHandler) ListDonorOrders(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	orders, err := h.orderUseCase.ListForDonor(c.Request().Context(), donorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}

// ListVendorOrders accepts an optional ?status= filter.
func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	orders, err := h.orderUseCase.ListForVendor(c.Request().Context(), vendorID, c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}

func (h *OrderHandler) ListCharityOrders(c echo.Context) error {
	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	orders, err := h.orderUseCase.ListForCharity(c.Request().Context(), charityID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.Get(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), vendorID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
