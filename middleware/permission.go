package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"

	"github.com/gin-gonic/gin"
)

const ctxCurrentUser = "currentUser"

// UserLookup resolves the caller's current record. *store.Store satisfies it.
type UserLookup interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

// Permissions enforces capability flags. The flags embedded in the token are
// only a snapshot, so every check re-reads the user from the store; a
// revoked flag or deleted account takes effect on the next request.
type Permissions struct {
	users  UserLookup
	logger *slog.Logger
}

func NewPermissions(users UserLookup, logger *slog.Logger) *Permissions {
	return &Permissions{users: users, logger: logger}
}

// RequireAdministrator must run after AuthRequired.
func (p *Permissions) RequireAdministrator() gin.HandlerFunc {
	return p.require("Admins only", func(u *models.User) bool { return u.IsAdmin })
}

// RequireMenuManage must run after AuthRequired.
func (p *Permissions) RequireMenuManage() gin.HandlerFunc {
	return p.require("No menu permission", func(u *models.User) bool { return u.CanManageMenu })
}

func (p *Permissions) require(denied string, allowed func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := p.currentUser(c)
		switch {
		case errors.Is(err, store.ErrNotFound):
			abortWithError(c, http.StatusForbidden, "forbidden", denied)
			return
		case err != nil:
			p.logger.Error("load current user", "user_id", GetUserID(c), "error", err)
			abortWithError(c, http.StatusInternalServerError, "internal", "Internal server error")
			return
		}
		if !allowed(user) {
			abortWithError(c, http.StatusForbidden, "forbidden", denied)
			return
		}
		c.Next()
	}
}

// currentUser loads the caller once per request.
func (p *Permissions) currentUser(c *gin.Context) (*models.User, error) {
	if val, ok := c.Get(ctxCurrentUser); ok {
		return val.(*models.User), nil
	}
	claims := GetClaims(c)
	if claims == nil {
		return nil, store.ErrNotFound
	}
	user, err := p.users.UserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	c.Set(ctxCurrentUser, user)
	return user, nil
}
