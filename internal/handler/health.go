package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/askhub/internal/middleware"
	"github.com/deppfellow/askhub/internal/server"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// CheckHealth pings PostgreSQL and Redis. The database is required;
// Redis only degrades caching and notifications, so it never fails the
// check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]HealthCheck{},
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	response.Checks["database"] = h.probe(ctx, "database", h.server.DB.Ping)
	if response.Checks["database"].Status != "healthy" {
		response.Status = "unhealthy"
	}

	if h.server.Redis != nil {
		response.Checks["redis"] = h.probe(ctx, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		if response.Status == "healthy" && response.Checks["redis"].Status != "healthy" {
			response.Status = "degraded"
		}
	}

	if response.Status == "unhealthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) probe(ctx context.Context, name string, ping func(context.Context) error) HealthCheck {
	started := time.Now()
	err := ping(ctx)
	check := HealthCheck{Status: "healthy", ResponseTime: time.Since(started).String()}
	if err == nil {
		return check
	}

	check.Status = "unhealthy"
	check.Error = err.Error()
	h.server.Logger.Error().Err(err).Str("check", name).Msg("health check failed")

	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"response_time_ms": time.Since(started).Milliseconds(),
			"error_message":    err.Error(),
		})
	}
	return check
}
