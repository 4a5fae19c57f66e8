package models

import "time"

// StatusPending is the status every new order starts in. Status is otherwise
// an open domain: any string an administrator sets is stored as-is.
const StatusPending = "pending"

type Order struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	// Items is the client-defined line-item payload, stored verbatim.
	Items     LineItems `json:"items" gorm:"type:text"`
	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderStatusHistory is one entry of an order's status audit trail.
type OrderStatusHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status" gorm:"not null"`
	ChangedBy  uint      `json:"changed_by"` // user ID who made the change
	CreatedAt  time.Time `json:"created_at"`
}
