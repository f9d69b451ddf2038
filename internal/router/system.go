package router

import (
	"net/http"

	"github.com/deppfellow/askhub/internal/handler"
	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/deppfellow/askhub/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints outside the API: health,
// metrics, docs and the embedded static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(mw.Metrics.Handler()))
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(static.Files)))))
}
