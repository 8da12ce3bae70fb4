package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string     `json:"phone" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-"`
	OTP          string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	Role         UserRole   `json:"role" gorm:"not null;default:'user'"`
	Language     string     `json:"language" gorm:"default:'en'"`
	DateOfBirth  string     `json:"date_of_birth"`
	Gender       string     `json:"gender"`
	Avatar       string     `json:"avatar"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
