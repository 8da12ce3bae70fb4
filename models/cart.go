package models

import "time"

// Cart is the transient per-user, per-restaurant selection made before an
// order is placed. One cart per (user, restaurant) pair.
type Cart struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"not null;index:idx_cart_user_restaurant,unique"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index:idx_cart_user_restaurant,unique"`
	Items        []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CartID     uint      `json:"cart_id" gorm:"not null;index"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem  `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
