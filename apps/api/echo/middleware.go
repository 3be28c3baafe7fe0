package echoapi

import (
	"github.com/labstack/echo/v4"
)

// noStoreMiddleware keeps exports out of HTTP caches: they reflect the current store state.
func noStoreMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Response().Header().Set("Cache-Control", "no-store")
		return next(ctx)
	}
}
