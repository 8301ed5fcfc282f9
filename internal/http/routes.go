package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"kanban_board/internal/http/handlers"
	"kanban_board/internal/http/middleware"
	"kanban_board/internal/ws"
)

// RegisterRoutes mounts the board API. The same routes are served under
// /api/v1 and legacy /api.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, hub *ws.Hub, apiRateLimit int, apiRateWindow time.Duration) {
	r.Use(middleware.Metrics())

	// Health checks, no rate limiting.
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(api, h)

	// Board event stream for other open sessions.
	r.GET("/ws/board", h.BoardWS(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.GET("/buckets", h.Buckets)

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PUT("/tasks/:id/move", h.MoveTask)
}
