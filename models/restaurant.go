package models

import "time"

type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Latitude    float64    `json:"latitude" gorm:"not null"`
	Longitude   float64    `json:"longitude" gorm:"not null"`
	Address     string     `json:"address"`
	Cuisines    StringList `json:"cuisines" gorm:"type:text"`
	Rating      float64    `json:"rating" gorm:"default:0"`
	DeliveryFee float64    `json:"delivery_fee" gorm:"default:0"`
	Image       string     `json:"image"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Image        string    `json:"image"`
	Section      string    `json:"section"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
