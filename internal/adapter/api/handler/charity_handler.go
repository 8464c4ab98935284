package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/internal/usecase"
	"ripple/pkg/errors"
	"ripple/pkg/response"
)

type CharityHandler struct {
	charityUseCase *usecase.CharityUseCase
}

func NewCharityHandler(charityUseCase *usecase.CharityUseCase) *CharityHandler {
	return &CharityHandler{
		charityUseCase: charityUseCase,
	}
}

type neededItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type postRequest struct {
	PostType    string              `json:"post_type" validate:"required,oneof=fundraising impact"`
	Headline    string              `json:"headline" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Location    string              `json:"location"`
	NeededItems []neededItemRequest `json:"needed_items" validate:"dive"`
	Deadline    string              `json:"deadline"`
	ImageURLs   []string            `json:"image_urls" validate:"dive,url"`
}

// parseDeadline accepts RFC 3339 timestamps and plain dates.
func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, errors.BadRequest("Deadline must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err)
	}
	return &t, nil
}

func (r postRequest) input() (usecase.PostInput, error) {
	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return usecase.PostInput{}, err
	}

	needed := make([]entity.NeededItem, len(r.NeededItems))
	for i, item := range r.NeededItems {
		needed[i] = entity.NeededItem{Name: item.Name, Quantity: item.Quantity}
	}

	return usecase.PostInput{
		PostType:    r.PostType,
		Headline:    r.Headline,
		Description: r.Description,
		Location:    r.Location,
		NeededItems: needed,
		Deadline:    deadline,
		ImageURLs:   r.ImageURLs,
	}, nil
}

func (h *CharityHandler) bindPost(c echo.Context) (usecase.PostInput, error) {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return usecase.PostInput{}, err
	}

	if err := c.Validate(&req); err != nil {
		return usecase.PostInput{}, err
	}

	return req.input()
}

func (h *CharityHandler) CreatePost(c echo.Context) error {
	input, err := h.bindPost(c)
	if err != nil {
		return response.Error(c, err)
	}

	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	post, err := h.charityUseCase.CreatePost(c.Request().Context(), charityID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *CharityHandler) UpdatePost(c echo.Context) error {
	input, err := h.bindPost(c)
	if err != nil {
		return response.Error(c, err)
	}

	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	post, err := h.charityUseCase.UpdatePost(c.Request().Context(), charityID, c.Param("id"), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *CharityHandler) DeletePost(c echo.Context) error {
	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.charityUseCase.DeletePost(c.Request().Context(), charityID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Post deleted successfully",
	})
}

// ListOwnPosts lists the signed-in charity's posts, optionally by ?type=.
func (h *CharityHandler) ListOwnPosts(c echo.Context) error {
	charityID, err := uidFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	posts, err := h.charityUseCase.ListPosts(c.Request().Context(), charityID, c.QueryParam("type"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *CharityHandler) ListPosts(c echo.Context) error {
	posts, err := h.charityUseCase.ListPosts(c.Request().Context(), c.QueryParam("charityId"), c.QueryParam("type"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *CharityHandler) GetPost(c echo.Context) error {
	post, err := h.charityUseCase.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}
