package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a restaurant order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                  uint                 `json:"id" gorm:"primaryKey"`
	UserID              uint                 `json:"user_id" gorm:"not null;index"`
	User                *User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status              OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	TotalAmount         decimal.Decimal      `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	SpecialInstructions string               `json:"special_instructions"`
	Lines               []OrderLine          `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
	Review              *Review              `json:"review,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory       []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time            `json:"order_date"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// OrderLine is one priced line of an order. PriceAtTime and Name are copied
// from the menu item when the order is created and never re-read.
type OrderLine struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID  uint            `json:"menu_item_id" gorm:"not null;index"`
	MenuItem    *MenuItem       `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity >= 1"`
	PriceAtTime decimal.Decimal `json:"price_at_time" gorm:"type:numeric(10,2);not null"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.PriceAtTime.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderStatusHistory records every status an order has been given, starting
// with the one it was created in.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
