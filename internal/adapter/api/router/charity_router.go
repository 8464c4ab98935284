package router

import (
	"ripple/internal/adapter/api/handler"
	"ripple/internal/adapter/api/middleware"
	"ripple/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupCharityRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	profileHandler := handler.GetProfileHandler()
	charityHandler := handler.GetCharityHandler()
	orderHandler := handler.GetOrderHandler()
	donationHandler := handler.GetDonationHandler()
	uploadHandler := handler.GetUploadHandler()

	charity := e.Group("/api/charity")
	charity.Use(authMiddleware.Authenticate)
	charity.Use(roleMiddleware.Require(entity.RoleCharity))

	charity.GET("/profile", profileHandler.GetCharityProfile)
	charity.PUT("/profile", profileHandler.UpdateCharityProfile)

	charity.GET("/posts", charityHandler.ListOwnPosts)
	charity.POST("/posts", charityHandler.CreatePost)
	charity.PUT("/posts/:id", charityHandler.UpdatePost)
	charity.DELETE("/posts/:id", charityHandler.DeletePost)

	charity.GET("/orders", orderHandler.ListCharityOrders)
	charity.GET("/donations", donationHandler.ListCharityDonations)

	charity.POST("/uploads", uploadHandler.UploadImage)
}
