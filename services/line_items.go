package services

import (
	"context"
	"math"
	"strconv"

	"restaurant-ordering-api/models"

	"github.com/tidwall/gjson"
)

// MenuLookup reports which ids refer to existing menu items.
type MenuLookup interface {
	ExistingMenuItemIDs(ctx context.Context, ids []uint) (map[uint]bool, error)
}

// MenuLineItemValidator accepts a JSON array of line items, each naming an
// existing menu item by productId (or product_id) with an optional positive
// integer quantity. Any other keys are left alone.
type MenuLineItemValidator struct {
	menu MenuLookup
}

func NewMenuLineItemValidator(menu MenuLookup) *MenuLineItemValidator {
	return &MenuLineItemValidator{menu: menu}
}

func (v *MenuLineItemValidator) Validate(ctx context.Context, items models.LineItems) error {
	if !gjson.ValidBytes(items) {
		return invalidInput("items must be valid JSON")
	}
	parsed := gjson.ParseBytes(items)
	if !parsed.IsArray() {
		return invalidInput("items must be an array")
	}
	lines := parsed.Array()
	if len(lines) == 0 {
		return invalidInput("items must not be empty")
	}

	ids := make([]uint, 0, len(lines))
	for i, line := range lines {
		pid := line.Get("productId")
		if !pid.Exists() {
			pid = line.Get("product_id")
		}
		id, ok := positiveInt(pid)
		if !ok {
			return invalidInput("line item %d: productId must be a positive integer", i)
		}
		if qty := line.Get("quantity"); qty.Exists() {
			if _, ok := positiveInt(qty); !ok {
				return invalidInput("line item %d: quantity must be a positive integer", i)
			}
		}
		ids = append(ids, uint(id))
	}

	found, err := v.menu.ExistingMenuItemIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i, id := range ids {
		if !found[id] {
			return invalidInput("line item %d: menu item %d does not exist", i, id)
		}
	}
	return nil
}

// positiveInt accepts JSON numbers and numeric strings.
func positiveInt(r gjson.Result) (uint64, bool) {
	switch r.Type {
	case gjson.Number:
		if r.Num < 1 || r.Num != math.Trunc(r.Num) {
			return 0, false
		}
		return uint64(r.Num), true
	case gjson.String:
		n, err := strconv.ParseUint(r.Str, 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
