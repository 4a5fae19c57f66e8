package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"restaurant-ordering-api/models"
	"restaurant-ordering-api/store"
	"restaurant-ordering-api/uploads"

	"github.com/shopspring/decimal"
)

type MenuStore interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	SaveMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error
}

// ImageStore persists uploaded files and returns the reference to keep on
// the menu item.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

// MenuFields carries writable menu columns. A nil field was not supplied.
type MenuFields struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
}

// maxPrice is the largest value a decimal(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalidInput("price must not be negative")
	}
	if price.GreaterThan(maxPrice) {
		return invalidInput("price must not exceed %s", maxPrice.StringFixed(2))
	}
	return nil
}

// ParsePrice parses a client-supplied decimal price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, invalidInput("price %q is not a number", raw)
	}
	return price, nil
}

type MenuService struct {
	store  MenuStore
	images ImageStore
	logger *slog.Logger
}

func NewMenuService(menu MenuStore, images ImageStore, logger *slog.Logger) *MenuService {
	return &MenuService{store: menu, images: images, logger: logger}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenu(ctx)
}

// Create adds an item. Name and price are required; image may be nil.
func (s *MenuService) Create(ctx context.Context, f MenuFields, image *multipart.FileHeader) (*models.MenuItem, error) {
	if f.Name == nil || *f.Name == "" {
		return nil, invalidInput("name is required")
	}
	if f.Price == nil {
		return nil, invalidInput("price is required")
	}
	if err := checkPrice(*f.Price); err != nil {
		return nil, err
	}

	item := &models.MenuItem{Name: *f.Name, Price: *f.Price}
	if f.Category != nil {
		item.Category = *f.Category
	}

	if image != nil {
		ref, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		item.Image = &ref
	}

	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		if item.Image != nil {
			s.removeImage(*item.Image)
		}
		return nil, err
	}

	s.logger.Info("menu item created", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// Update applies the supplied fields. Omitted and empty-string fields keep
// their stored value; a supplied price of 0 is applied. A new image
// replaces the old one, whose file is removed once the row is saved.
func (s *MenuService) Update(ctx context.Context, id uint, f MenuFields, image *multipart.FileHeader) (*models.MenuItem, error) {
	item, err := s.store.MenuItemByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if f.Name != nil && *f.Name != "" {
		item.Name = *f.Name
	}
	if f.Category != nil && *f.Category != "" {
		item.Category = *f.Category
	}
	if f.Price != nil {
		if err := checkPrice(*f.Price); err != nil {
			return nil, err
		}
		item.Price = *f.Price
	}

	var previous *string
	if image != nil {
		ref, err := s.saveImage(image)
		if err != nil {
			return nil, err
		}
		previous = item.Image
		item.Image = &ref
	}

	if err := s.store.SaveMenuItem(ctx, item); err != nil {
		if image != nil {
			s.removeImage(*item.Image)
		}
		return nil, err
	}
	if previous != nil && *previous != *item.Image {
		s.removeImage(*previous)
	}

	s.logger.Info("menu item updated", "item_id", item.ID)
	return item, nil
}

// Delete removes the item and then its image file.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	item, err := s.store.MenuItemByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return notFound(err)
	}
	if item.Image != nil {
		s.removeImage(*item.Image)
	}

	s.logger.Info("menu item deleted", "item_id", id)
	return nil
}

func (s *MenuService) saveImage(fh *multipart.FileHeader) (string, error) {
	ref, err := s.images.Save(fh)
	if err != nil {
		if errors.Is(err, uploads.ErrTooLarge) || errors.Is(err, uploads.ErrNotImage) {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}

// removeImage is best effort: the row is already committed, so a leftover
// file is only logged.
func (s *MenuService) removeImage(ref string) {
	if err := s.images.Remove(ref); err != nil {
		s.logger.Warn("remove image", "image", ref, "error", err)
	}
}

// notFound maps store.ErrNotFound onto ErrNotFound and passes anything
// else through.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
