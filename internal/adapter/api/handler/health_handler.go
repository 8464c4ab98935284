package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	environment string
	startedAt   time.Time
}

var healthHandler *HealthHandler

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		startedAt:   time.Now(),
	}
}

func SetupHealthHandler(environment string) {
	healthHandler = NewHealthHandler(environment)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Ripple API is running",
		"endpoints": []string{
			"GET /api/test",
			"GET /health",
			"POST /api/ai-recommendation",
			"GET /api/charity/public/:charityId",
			"GET /api/listings",
			"GET /api/posts",
			"POST /api/auth/signup",
			"POST /api/auth/signin",
			"GET /ws?token=",
		},
	})
}

func (h *HealthHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Server is working!",
	})
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": h.environment,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"time":        time.Now().Format(time.RFC3339),
	})
}
