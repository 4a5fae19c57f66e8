package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as JSON numbers (2.25), not strings ("2.25").
	decimal.MarshalJSONWithoutQuotes = true
}

type MenuItem struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"not null"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	// Image is a public path under /uploads, or nil when no image was attached.
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
