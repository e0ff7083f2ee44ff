package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"food_name" gorm:"not null"`
	Description string          `json:"food_description"`
	Price       decimal.Decimal `json:"food_price" gorm:"type:numeric(10,2);not null"`
	ImageURL    string          `json:"food_image,omitempty"`
	IsAvailable bool            `json:"is_available" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
