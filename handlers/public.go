package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports whether the service and its database are up
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "Restaurant Ordering API",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Restaurant Ordering API",
	})
}

// Index lists the main entry points
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Restaurant Ordering API",
		"menu":    "/api/menu",
		"health":  "/health",
		"metrics": "/metrics",
	})
}
