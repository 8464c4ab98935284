package router

import (
	"ripple/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware, aiRateLimit int) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware)
	SetupPublicRouter(e, aiRateLimit)
	SetupDonorRouter(e, authMiddleware, roleMiddleware)
	SetupVendorRouter(e, authMiddleware, roleMiddleware)
	SetupCharityRouter(e, authMiddleware, roleMiddleware)
	SetupWebSocketRouter(e)
}
