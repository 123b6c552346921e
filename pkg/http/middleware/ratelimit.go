package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter decides whether one more request for key fits its token bucket.
type Limiter interface {
	Allow(key string, capacity, refillPerSec float64) bool
}

// RateLimitConfig binds a Limiter to a bucket shape.
type RateLimitConfig struct {
	Limiter      Limiter
	Capacity     float64
	RefillPerSec float64
	// KeyFunc defaults to the client IP.
	KeyFunc func(c echo.Context) string
}

// RateLimit rejects requests with 429 once the caller's bucket is empty.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c echo.Context) string { return c.RealIP() }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Limiter == nil {
				return next(c)
			}
			if !cfg.Limiter.Allow(keyFunc(c), cfg.Capacity, cfg.RefillPerSec) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}
			return next(c)
		}
	}
}
