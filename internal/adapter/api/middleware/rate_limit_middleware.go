package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"ripple/pkg/errors"
	"ripple/pkg/logger"
	"ripple/pkg/response"
)

// Sign-up and sign-in attempts per client IP per minute.
const authAttemptsPerMinute = 10

// RateLimit allows perMinute requests per client IP, refilled continuously,
// with bursts up to perMinute.
func RateLimit(perMinute int, message string) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 10
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Error(c, errors.Forbidden("Unable to identify client", err))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("Rate limit exceeded for %s on %s", identifier, c.Path())
			return response.Error(c, errors.TooManyRequests(message))
		},
	})
}

func AIRateLimit(perMinute int) echo.MiddlewareFunc {
	return RateLimit(perMinute, "Too many AI requests, please try again in a minute")
}

func AuthRateLimit() echo.MiddlewareFunc {
	return RateLimit(authAttemptsPerMinute, "Too many sign-in attempts, please try again later")
}
