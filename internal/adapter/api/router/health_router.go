package router

import (
	"ripple/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/", healthHandler.Banner)
	e.GET("/api/test", healthHandler.Test)
	e.GET("/health", healthHandler.CheckHealth)
}
