package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemsScan(t *testing.T) {
	var l LineItems

	require.NoError(t, l.Scan(`[{"productId":1}]`))
	assert.Equal(t, `[{"productId":1}]`, string(l))

	require.NoError(t, l.Scan([]byte(`{"a":2}`)))
	assert.Equal(t, `{"a":2}`, string(l))

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
}

func TestLineItemsValue(t *testing.T) {
	v, err := LineItems(`[1,2]`).Value()
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", v)

	v, err = LineItems(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "null", v)
}

func TestOrderJSONEmbedsItemsVerbatim(t *testing.T) {
	order := Order{ID: 7, UserID: 3, Items: LineItems(`[{"productId":4,"quantity":2,"price":2.5}]`), Status: StatusPending}

	out, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items":[{"productId":4,"quantity":2,"price":2.5}]`)

	var back Order
	require.NoError(t, json.Unmarshal(out, &back))
	assert.JSONEq(t, string(order.Items), string(back.Items))
}

func TestMenuItemPriceIsJSONNumber(t *testing.T) {
	item := MenuItem{Name: "Lemonade", Category: "Drinks", Price: decimal.RequireFromString("2.25")}

	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":2.25`)
	assert.Contains(t, string(out), `"image":null`)
}
