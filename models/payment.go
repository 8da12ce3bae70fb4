package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PaymentProvider identifies the gateway a payment went through
type PaymentProvider string

const (
	ProviderRazorpay PaymentProvider = "razorpay"
	ProviderPaytm    PaymentProvider = "paytm"
	ProviderPhonePe  PaymentProvider = "phonepe"
	ProviderUPI      PaymentProvider = "upi"
)

// PaymentState is the state of the payment attempt itself
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStateSuccess PaymentState = "success"
	PaymentStateFailed  PaymentState = "failed"
)

// JSONMap holds opaque provider-specific transaction detail as a JSON column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	values := map[string]interface{}{}
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*m = values
	return nil
}

// Payment records one payment attempt against an order. OrderRef is the
// human-readable order identifier, not the internal row id.
type Payment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderRef  string          `json:"order_id" gorm:"column:order_ref;uniqueIndex;not null"`
	UserID    *uint           `json:"user_id"`
	Amount    float64         `json:"amount" gorm:"not null"`
	Provider  PaymentProvider `json:"provider" gorm:"not null"`
	Status    PaymentState    `json:"status" gorm:"not null;default:'pending'"`
	PaymentID string          `json:"payment_id"`
	UPIApp    string          `json:"upi_app"`
	Method    string          `json:"method"`
	Details   JSONMap         `json:"transaction_details" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
