package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"restaurant-ordering-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// menuJSON is the JSON form of a menu write. Price may be a number or a
// numeric string.
type menuJSON struct {
	Name     *string         `json:"name"`
	Category *string         `json:"category"`
	Price    json.RawMessage `json:"price"`
}

// ListMenu returns every menu item (public)
func (h *Handler) ListMenu(c *gin.Context) {
	items, err := h.menu.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateMenuItem adds an item, optionally with an image file part
func (h *Handler) CreateMenuItem(c *gin.Context) {
	fields, image, err := readMenuRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	item, err := h.menu.Create(c.Request.Context(), fields, image)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem applies whichever fields were sent
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	fields, image, err := readMenuRequest(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	item, err := h.menu.Update(c.Request.Context(), id, fields, image)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a menu item and its image
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.menu.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// readMenuRequest accepts JSON, urlencoded or multipart bodies. Only
// multipart bodies can carry an image.
func readMenuRequest(c *gin.Context) (services.MenuFields, *multipart.FileHeader, error) {
	if c.ContentType() == binding.MIMEJSON {
		fields, err := readMenuJSON(c)
		return fields, nil, err
	}

	var fields services.MenuFields
	if v, ok := c.GetPostForm("name"); ok {
		fields.Name = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		fields.Category = &v
	}
	if v, ok := c.GetPostForm("price"); ok && strings.TrimSpace(v) != "" {
		price, err := services.ParsePrice(v)
		if err != nil {
			return fields, nil, err
		}
		fields.Price = &price
	}

	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return fields, nil, nil
	}
	image, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return fields, nil, nil
	case err != nil:
		return fields, nil, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
	}
	return fields, image, nil
}

func readMenuJSON(c *gin.Context) (services.MenuFields, error) {
	var body menuJSON
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		return services.MenuFields{}, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
	}

	fields := services.MenuFields{Name: body.Name, Category: body.Category}
	raw := strings.TrimSpace(string(body.Price))
	if raw == "" || raw == "null" {
		return fields, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(body.Price, &s); err != nil {
			return fields, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
		}
		if strings.TrimSpace(s) == "" {
			return fields, nil
		}
		raw = s
	}
	price, err := services.ParsePrice(raw)
	if err != nil {
		return fields, err
	}
	fields.Price = &price
	return fields, nil
}
