package router

import (
	"ripple/internal/adapter/api/handler"
	"ripple/internal/adapter/api/middleware"
	"ripple/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupVendorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	profileHandler := handler.GetProfileHandler()
	listingHandler := handler.GetListingHandler()
	orderHandler := handler.GetOrderHandler()
	walletHandler := handler.GetWalletHandler()
	uploadHandler := handler.GetUploadHandler()

	vendor := e.Group("/api/vendor")
	vendor.Use(authMiddleware.Authenticate)
	vendor.Use(roleMiddleware.Require(entity.RoleVendor))

	vendor.GET("/profile", profileHandler.GetVendorProfile)
	vendor.PUT("/profile", profileHandler.UpdateVendorProfile)

	vendor.GET("/listings", listingHandler.ListVendorListings)
	vendor.POST("/listings", listingHandler.CreateListing)
	vendor.GET("/listings/:id", listingHandler.GetListing)
	vendor.PUT("/listings/:id", listingHandler.UpdateListing)
	vendor.DELETE("/listings/:id", listingHandler.DeleteListing)

	vendor.GET("/orders", orderHandler.ListVendorOrders)
	vendor.GET("/orders/:id", orderHandler.GetOrder)
	vendor.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	vendor.GET("/wallet", walletHandler.GetWallet)
	vendor.POST("/wallet/withdraw", walletHandler.Withdraw)

	vendor.POST("/uploads", uploadHandler.UploadImage)
}
