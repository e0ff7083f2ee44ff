package models

import "time"

// Review is bound one-to-one to an order through the unique OrderID index.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"uniqueIndex;not null"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Stars       int       `json:"stars" gorm:"not null;check:stars BETWEEN 1 AND 5"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
