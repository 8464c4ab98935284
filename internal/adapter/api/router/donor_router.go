package router

import (
	"ripple/internal/adapter/api/handler"
	"ripple/internal/adapter/api/middleware"
	"ripple/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func SetupDonorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	cartHandler := handler.GetCartHandler()
	orderHandler := handler.GetOrderHandler()
	donationHandler := handler.GetDonationHandler()

	donor := e.Group("/api/donor")
	donor.Use(authMiddleware.Authenticate)
	donor.Use(roleMiddleware.Require(entity.RoleDonor))

	donor.GET("/cart", cartHandler.GetCart)
	donor.POST("/cart", cartHandler.AddItem)
	donor.PATCH("/cart/:id/quantity", cartHandler.UpdateQuantity)
	donor.PATCH("/cart/:id/selection", cartHandler.UpdateSelection)
	donor.DELETE("/cart/:id", cartHandler.RemoveItem)
	donor.DELETE("/cart", cartHandler.ClearCart)

	donor.POST("/checkout", orderHandler.Checkout)
	donor.GET("/orders", orderHandler.ListDonorOrders)
	donor.GET("/orders/:id", orderHandler.GetOrder)

	donor.POST("/donations", donationHandler.Donate)
	donor.GET("/donations", donationHandler.ListDonorDonations)
}
