package router

import (
	"github.com/labstack/echo/v4"

	"ripple/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up WebSocket routes. The handler authenticates
// with the token query parameter itself.
func SetupWebSocketRouter(e *echo.Echo) {
	e.GET("/ws", handler.GetWebSocketHandler().HandleWebSocket)
}
