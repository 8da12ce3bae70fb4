package models

import "time"

// OfferType is how the discount value is interpreted
type OfferType string

const (
	OfferPercent OfferType = "percent"
	OfferAmount  OfferType = "amount"
)

type Offer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Type      OfferType `json:"type" gorm:"not null"`
	Value     float64   `json:"value" gorm:"not null"`
	Expiry    time.Time `json:"expiry" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
