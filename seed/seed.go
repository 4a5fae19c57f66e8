// Package seed prepares a fresh database: the bootstrap administrator and
// the baseline menu.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"

	"github.com/shopspring/decimal"
)

type Store interface {
	UserByName(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	CountAdministrators(ctx context.Context) (int64, error)
	CountMenu(ctx context.Context) (int64, error)
	CreateMenuItems(ctx context.Context, items []models.MenuItem) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Admin names the bootstrap account.
type Admin struct {
	Username string
	Password string
}

type baselineItem struct {
	name, category, price string
}

var baseline = []baselineItem{
	{"Lemonade", "Drinks", "2.00"},
	{"Strawberry Lemonade", "Drinks", "2.25"},
	{"Peach Lemonade", "Drinks", "2.50"},
	{"Water", "Drinks", "1.50"},
	{"Tropical Punch", "Drinks", "2.00"},

	{"Shrimp Fettuccine", "Mains", "17.85"},
	{"Chicken Fettuccine", "Mains", "16.85"},
	{"Mozzarella Basil Shrimp", "Mains", "16.50"},
	{"Tri Tip & Mac&Cheese", "Mains", "23.45"},
	{"Rib Eye Steak & Asparagus", "Mains", "25.35"},
	{"Fried Chicken Breast & Mac&Cheese", "Mains", "17.35"},

	{"French fries", "Sides", "7.85"},
	{"Mac&Cheese", "Sides", "9.85"},
	{"Salad", "Sides", "7.50"},

	{"Apple pie slice", "Sweets", "7"},
	{"Banana bread", "Sweets", "5"},
	{"Choco chip cookies", "Sweets", "3"},
	{"Snickerdoodle cookies", "Sweets", "3"},
	{"Double choc brownies", "Sweets", "5"},
	{"Lemon cupcakes", "Sweets", "4"},
	{"Vanilla cupcakes", "Sweets", "4"},
	{"Chocolate cupcakes", "Sweets", "4"},
	{"Cinnamon rolls", "Sweets", "5"},
}

// BaselineMenu returns a fresh copy of the default menu.
func BaselineMenu() []models.MenuItem {
	items := make([]models.MenuItem, 0, len(baseline))
	for _, b := range baseline {
		items = append(items, models.MenuItem{
			Name:     b.name,
			Category: b.category,
			Price:    decimal.RequireFromString(b.price),
		})
	}
	return items
}

// Run creates the administrator if the name is unused and fills the menu
// when it is empty. An existing account or a non-empty menu is left alone.
func Run(ctx context.Context, st Store, hasher PasswordHasher, admin Admin, logger *slog.Logger) error {
	if err := ensureAdmin(ctx, st, hasher, admin, logger); err != nil {
		return err
	}

	count, err := st.CountMenu(ctx)
	if err != nil {
		return fmt.Errorf("count menu items: %w", err)
	}
	if count != 0 {
		logger.Debug("menu already populated", "items", count)
		return nil
	}

	items := BaselineMenu()
	if err := st.CreateMenuItems(ctx, items); err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	logger.Info("seeded baseline menu", "items", len(items))
	return nil
}

func ensureAdmin(ctx context.Context, st Store, hasher PasswordHasher, admin Admin, logger *slog.Logger) error {
	existing, err := st.UserByName(ctx, admin.Username)
	if err == nil {
		if !existing.IsAdmin || !existing.CanManageMenu {
			n, err := st.CountAdministrators(ctx)
			if err != nil {
				return fmt.Errorf("count administrators: %w", err)
			}
			logger.Warn("bootstrap account lacks privileges", "username", admin.Username, "administrators", n)
		}
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := hasher.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		Username:      admin.Username,
		PasswordHash:  hash,
		IsAdmin:       true,
		CanManageMenu: true,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Info("created admin account", "username", admin.Username, "user_id", user.ID)
	return nil
}
