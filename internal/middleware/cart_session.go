package middleware

import (
	"github.com/alimikegami/pos-microservices/storefront-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	HeaderCartSession = "X-Cart-Session"
	cartKeyContextKey = "cart_key"
)

// CartSession resolves the cart record key from X-Cart-Session and adds it to the
// request logger.
func CartSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := service.CartKey(c.Request().Header.Get(HeaderCartSession))
		c.Set(cartKeyContextKey, key)

		logger := log.Ctx(c.Request().Context()).With().Str("cart_key", key).Logger()
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

		return next(c)
	}
}

// CartKey returns the key set by CartSession, or the shared cart key when the
// middleware did not run.
func CartKey(c echo.Context) string {
	if key, ok := c.Get(cartKeyContextKey).(string); ok && key != "" {
		return key
	}
	return service.DefaultCartKey
}
