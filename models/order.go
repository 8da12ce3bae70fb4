package models

import "time"

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// OrderPaymentStatus tracks whether an order has been paid for
type OrderPaymentStatus string

const (
	PaymentPending OrderPaymentStatus = "pending"
	PaymentPaid    OrderPaymentStatus = "paid"
	PaymentFailed  OrderPaymentStatus = "failed"
)

// Order is an immutable snapshot of the cart at placement time. Only the
// status fields change after creation.
type Order struct {
	ID            uint               `json:"id" gorm:"primaryKey"`
	OrderID       string             `json:"order_id" gorm:"uniqueIndex;not null"`
	UserID        uint               `json:"user_id" gorm:"not null;index"`
	RestaurantID  uint               `json:"restaurant_id" gorm:"not null"`
	Restaurant    Restaurant         `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items         []OrderItem        `json:"items" gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	Total         float64            `json:"total" gorm:"not null"`
	Status        OrderStatus        `json:"status" gorm:"not null;default:'placed'"`
	PaymentStatus OrderPaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderRef   uint    `json:"order_ref" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null;default:1"`
	Price      float64 `json:"price"` // snapshot price at time of order
	Name       string  `json:"name"`  // snapshot name
}
