package router

import (
	"ripple/internal/adapter/api/handler"
	"ripple/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupPublicRouter registers the routes donors browse without signing in.
func SetupPublicRouter(e *echo.Echo, aiRateLimit int) {
	listingHandler := handler.GetListingHandler()
	charityHandler := handler.GetCharityHandler()
	profileHandler := handler.GetProfileHandler()
	recommendationHandler := handler.GetRecommendationHandler()

	e.POST("/api/ai-recommendation", recommendationHandler.Recommend, middleware.AIRateLimit(aiRateLimit))
	e.GET("/api/charity/public/:charityId", profileHandler.GetPublicCharity)
	e.GET("/api/listings", listingHandler.BrowseListings)
	e.GET("/api/posts", charityHandler.ListPosts)
	e.GET("/api/posts/:id", charityHandler.GetPost)
}
