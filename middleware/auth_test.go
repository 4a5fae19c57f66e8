package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-ordering-api/logging"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) UserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

type failingUsers struct{}

func (failingUsers) UserByID(context.Context, uint) (*models.User, error) {
	return nil, errors.New("database is locked")
}

func newEngine(tokens *TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "username": claims.Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)
	user := &models.User{ID: 42, Username: "carol", IsAdmin: true, CanManageMenu: false}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "carol", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.False(t, claims.CanManageMenu)
	require.NotNil(t, claims.ExpiresAt)
}

func TestVerifyRejects(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)
	user := &models.User{ID: 1, Username: "dave"}

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenManager("another-secret-987654321", time.Hour).Issue(user)
		require.NoError(t, err)
		_, err = tokens.Verify(other)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager(testSecret, time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		signed, err := past.Issue(user)
		require.NoError(t, err)
		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		claims := Claims{UserID: 1, Username: "dave"}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthRequired(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)
	r := newEngine(tokens)
	signed, err := tokens.Issue(&models.User{ID: 7, Username: "erin"})
	require.NoError(t, err)

	t.Run("missing token is 401", func(t *testing.T) {
		rec := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing_token", errorCode(t, rec))
	})

	t.Run("scheme without token is 401", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Bearer ", "bearer   "} {
			rec := doGet(r, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%q", header)
			assert.Equal(t, "missing_token", errorCode(t, rec), "%q", header)
		}
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		rec := doGet(r, "Bearer abc.def.ghi")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "invalid_token", errorCode(t, rec))
	})

	t.Run("bearer token", func(t *testing.T) {
		rec := doGet(r, "Bearer "+signed)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":7,"username":"erin"}`, rec.Body.String())
	})

	t.Run("bare token", func(t *testing.T) {
		rec := doGet(r, signed)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPermissions(t *testing.T) {
	tokens := NewTokenManager(testSecret, time.Hour)
	users := fakeUsers{
		1: {ID: 1, Username: "admin", IsAdmin: true, CanManageMenu: true},
		2: {ID: 2, Username: "clerk", IsAdmin: true},
		3: {ID: 3, Username: "guest"},
	}
	perms := NewPermissions(users, logging.Discard())
	r := newEngine(tokens, perms.RequireAdministrator(), perms.RequireMenuManage())

	issue := func(u *models.User) string {
		signed, err := tokens.Issue(u)
		require.NoError(t, err)
		return "Bearer " + signed
	}

	t.Run("admin with menu rights", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doGet(r, issue(users[1])).Code)
	})

	t.Run("admin without menu rights", func(t *testing.T) {
		rec := doGet(r, issue(users[2]))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "No menu permission")
	})

	t.Run("not an admin", func(t *testing.T) {
		rec := doGet(r, issue(users[3]))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden", errorCode(t, rec))
		assert.Contains(t, rec.Body.String(), "Admins only")
	})

	t.Run("stale token after revocation", func(t *testing.T) {
		// Token claims admin, store no longer does.
		stale := issue(&models.User{ID: 3, Username: "guest", IsAdmin: true, CanManageMenu: true})
		assert.Equal(t, http.StatusForbidden, doGet(r, stale).Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := issue(&models.User{ID: 99, Username: "ghost", IsAdmin: true, CanManageMenu: true})
		assert.Equal(t, http.StatusForbidden, doGet(r, ghost).Code)
	})

	t.Run("store failure", func(t *testing.T) {
		broken := NewPermissions(failingUsers{}, logging.Discard())
		r := newEngine(tokens, broken.RequireAdministrator())
		rec := doGet(r, issue(users[1]))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal", errorCode(t, rec))
	})
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://menu.example.com"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://menu.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
