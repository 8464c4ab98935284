package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/internal/usecase"
	"ripple/pkg/response"
)

type RecommendationHandler struct {
	recommendationUseCase *usecase.RecommendationUseCase
}

func NewRecommendationHandler(recommendationUseCase *usecase.RecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
	}
}

type recommendationRequest struct {
	Description string `json:"description" validate:"required"`
	Headline    string `json:"headline"`
	Location    string `json:"location"`
}

// Recommend answers with {success, analysis}, the shape the web client reads.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req recommendationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	analysis, err := h.recommendationUseCase.Recommend(c.Request().Context(), entity.RecommendationRequest{
		Description: req.Description,
		Headline:    req.Headline,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": analysis,
	})
}
