// Package handlers adapts HTTP requests onto the ordering services.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"restaurant-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the services every route delegates to.
type Handler struct {
	auth   *services.AuthService
	menu   *services.MenuService
	orders *services.OrderService
	db     Pinger
	logger *slog.Logger
}

func New(auth *services.AuthService, menu *services.MenuService, orders *services.OrderService, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		auth:   auth,
		menu:   menu,
		orders: orders,
		db:     db,
		logger: logger,
	}
}

// respondError writes the status and machine code for err. Anything not
// recognised is logged and hidden behind a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateIdentity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists", "code": "duplicate_identity"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials", "code": "invalid_credentials"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "not_found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_input"})
	default:
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": "invalid_input"})
}

// pathID parses the :id parameter. Ids that cannot name a row are reported
// as not found, the same as unused ones.
func (h *Handler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		h.respondError(c, services.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}
