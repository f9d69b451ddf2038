// Package router builds the echo instance: global middleware, system
// routes and the /api/v1 surface.
package router

import (
	"github.com/deppfellow/askhub/internal/handler"
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/labstack/echo/v4"
)

func NewRouter(h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	r.Use(
		mw.Global.Recover(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Collect(),
		mw.Global.RequestLogger(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.RateLimit.Limit(),
	)

	registerSystemRoutes(r, h, mw)
	registerV1Routes(r.Group("/api/v1"), h, mw)

	return r
}
