package models

import "time"

// AddressType is the label the client shows for a saved address
type AddressType string

const (
	AddressHome   AddressType = "Home"
	AddressOffice AddressType = "Office"
	AddressOther  AddressType = "Other"
)

// Address belongs to exactly one user. At most one address per user is
// marked default; writes that set a default clear the flag on the rest.
type Address struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    uint        `json:"user_id" gorm:"not null;index"`
	Type      AddressType `json:"type" gorm:"not null"`
	Name      string      `json:"name" gorm:"not null"`
	Phone     string      `json:"phone" gorm:"not null"`
	Address   string      `json:"address" gorm:"not null"`
	Landmark  string      `json:"landmark"`
	City      string      `json:"city" gorm:"not null"`
	State     string      `json:"state" gorm:"not null"`
	Pincode   string      `json:"pincode" gorm:"not null"`
	IsDefault bool        `json:"is_default" gorm:"default:false"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
