package models

import "time"

type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	OrderID      uint      `json:"order_id" gorm:"not null"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
