package handler

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/usecase"
	"ripple/pkg/response"
	"ripple/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type listingRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

func (r listingRequest) input() usecase.ListingInput {
	return usecase.ListingInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Category:    r.Category,
		Condition:   r.Condition,
		ImageURL:    r.ImageURL,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req listingRequest
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

	listing, err := h.listingUseCase.Create(c.Request().Context(), vendorID, req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) ListVendorListings(c echo.Context) error {
	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	listings, err := h.listingUseCase.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Get(c.Request().Context(), vendorID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req listingRequest
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

	listing, err := h.listingUseCase.Update(c.Request().Context(), vendorID, c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	vendorID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.listingUseCase.Delete(c.Request().Context(), vendorID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}

// BrowseListings is the public catalogue: in-stock listings of every vendor,
// filtered by ?q= keywords and ?category=, paged with ?page= and ?limit=.
func (h *ListingHandler) BrowseListings(c echo.Context) error {
	listings, err := h.listingUseCase.Browse(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	start, end := pagination.Window(len(listings))

	return response.Paginated(c, listings[start:end], int64(len(listings)), pagination.Page, pagination.PageSize)
}
