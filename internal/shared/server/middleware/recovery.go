package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"goal-detector/internal/shared/server/respond"
	"goal-detector/internal/shared/telemetry"
)

// Recovery turns a handler panic into a logged 500 in the error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		telemetry.Error("panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"roadmap_id": RoadmapIDFromContext(c),
			"route":      c.FullPath(),
			"error":      rec,
			"stack":      string(debug.Stack()),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
	})
}
