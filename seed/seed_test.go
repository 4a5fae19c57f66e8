package seed

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/logging"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct{}

func (bcryptHasher) HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(h), err
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "seed.db"),
	}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	admin := Admin{Username: "kingyumyum", Password: "s3cret-admin"}

	require.NoError(t, Run(ctx, s, bcryptHasher{}, admin, logging.Discard()))

	user, err := s.UserByName(ctx, "kingyumyum")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.CanManageMenu)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-admin")))

	items, err := s.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, items, 23)

	perCategory := map[string]int{}
	for _, it := range items {
		perCategory[it.Category]++
	}
	assert.Equal(t, map[string]int{"Drinks": 5, "Mains": 6, "Sides": 3, "Sweets": 9}, perCategory)
	assert.Equal(t, "Lemonade", items[0].Name)
	assert.True(t, decimal.RequireFromString("2").Equal(items[0].Price))

	require.NoError(t, Run(ctx, s, bcryptHasher{}, admin, logging.Discard()))

	n, err := s.CountMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(23), n)
	admins, err := s.CountAdministrators(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
}

func TestRunLeavesNonEmptyMenuAlone(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateMenuItem(ctx, &models.MenuItem{Name: "House special", Price: decimal.RequireFromString("12")}))

	require.NoError(t, Run(ctx, s, bcryptHasher{}, Admin{Username: "root", Password: "pw"}, logging.Discard()))

	n, err := s.CountMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRunKeepsExistingAdminPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	hash, err := bcryptHasher{}.HashPassword("original")
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "root", PasswordHash: hash, IsAdmin: true, CanManageMenu: true}))

	require.NoError(t, Run(ctx, s, bcryptHasher{}, Admin{Username: "root", Password: "changed"}, logging.Discard()))

	user, err := s.UserByName(ctx, "root")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("original")))
}

func TestBaselineMenuPrices(t *testing.T) {
	items := BaselineMenu()
	require.Len(t, items, 23)
	for _, it := range items {
		assert.True(t, it.Price.IsPositive(), it.Name)
		assert.NotEmpty(t, it.Category, it.Name)
	}
}

func TestRunWarnsWhenBootstrapNameIsUnprivileged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "root", PasswordHash: "x"}))

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	require.NoError(t, Run(ctx, s, bcryptHasher{}, Admin{Username: "root", Password: "pw"}, logger))

	assert.Contains(t, buf.String(), "bootstrap account lacks privileges")
	user, err := s.UserByName(ctx, "root")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}
