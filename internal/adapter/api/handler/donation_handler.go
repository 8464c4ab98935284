package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type DonationHandler struct {
	donationUseCase *usecase.DonationUseCase
}

func NewDonationHandler(donationUseCase *usecase.DonationUseCase) *DonationHandler {
	return &DonationHandler{
		donationUseCase: donationUseCase,
	}
}

type donatedItemRequest struct {
	Name      string `json:"name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	ProductID string `json:"product_id"`
}

type donationRequest struct {
	CharityID string               `json:"charity_id" validate:"required_without=PostID"`
	PostID    string               `json:"post_id"`
	Items     []donatedItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Donate records items given straight to a charity, outside of checkout.
func (h *DonationHandler) Donate(c echo.Context) error {
	var req donationRequest
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

	donorName := ""
	if user := userFrom(c); user != nil {
		donorName = user.Name
	}

	items := make([]entity.DonatedItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = entity.DonatedItem{Name: item.Name, Quantity: item.Quantity, ProductID: item.ProductID}
	}

	record, err := h.donationUseCase.DonateDirect(c.Request().Context(), usecase.DonationInput{
		CharityID: req.CharityID,
		PostID:    req.PostID,
		DonorID:   donorID,
		DonorName: donorName,
		Items:     items,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, record)
}

func (h *DonationHandler) ListDonorDonations(c echo.Context) error {
	donorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	records, err := h.donationUseCase.ListForDonor(c.Request().Context(), donorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, records)
}

func (h *DonationHandler) ListCharityDonations(c echo.Context) error {
	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	records, err := h.donationUseCase.ListForCharity(c.Request().Context(), charityID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, records)
}
