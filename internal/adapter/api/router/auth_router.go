package router

import (
	"ripple/internal/adapter/api/handler"
	"ripple/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/auth", middleware.AuthRateLimit())
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)

	e.GET("/api/me", authHandler.Me, authMiddleware.Authenticate)
}
