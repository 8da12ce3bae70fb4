package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"desidine-api/i18n"
	"desidine-api/middleware"
	"desidine-api/models"
	"desidine-api/services"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password"`
	Language string `json:"language"`
}

// Signup creates an unverified account and dispatches an OTP to the phone.
func Signup(db *gorm.DB, sender services.OTPSender, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		lang := i18n.Normalize(req.Language)

		var existing models.User
		if err := db.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T(lang, i18n.KeyUserExists)})
			return
		}

		var hash string
		if req.Password != "" {
			h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create account"})
				return
			}
			hash = string(h)
		}

		otp, err := services.GenerateOTP()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create account"})
			return
		}
		expiry := time.Now().Add(otpTTL)

		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hash,
			OTP:          otp,
			OTPExpiresAt: &expiry,
			Role:         models.RoleUser,
			Language:     lang,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create account"})
			return
		}

		if err := sender.Send(c.Request.Context(), user.Phone, otp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": i18n.T(lang, i18n.KeySignupSuccess)})
	}
}

type VerifyOTPRequest struct {
	Phone    string `json:"phone" binding:"required"`
	OTP      string `json:"otp" binding:"required"`
	Language string `json:"language"`
}

// VerifyOTP marks the account verified on an exact, unexpired OTP match
// and clears the stored code so it cannot be replayed.
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		lang := i18n.Normalize(req.Language)

		var user models.User
		if err := db.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T(lang, i18n.KeyUserNotFound)})
			return
		}
		if !otpMatches(&user, req.OTP) {
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T(lang, i18n.KeyInvalidOTP)})
			return
		}

		if err := db.Model(&user).Updates(map[string]interface{}{
			"is_verified":    true,
			"otp":            "",
			"otp_expires_at": nil,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyLoginSuccess)})
	}
}

func otpMatches(user *models.User, otp string) bool {
	if user.OTP == "" || user.OTP != otp {
		return false
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return false
	}
	return true
}

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Language     string `json:"language"`
}

// Login authenticates a verified user and issues a session token.
func Login(db *gorm.DB, secret []byte, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		lang := i18n.Normalize(req.Language)

		var user models.User
		if err := db.Where("email = ? OR phone = ?", req.EmailOrPhone, req.EmailOrPhone).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T(lang, i18n.KeyUserNotFound)})
			return
		}
		if !user.IsVerified {
			c.JSON(http.StatusForbidden, gin.H{"message": i18n.T(lang, i18n.KeyInvalidOTP)})
			return
		}
		if user.PasswordHash == "" ||
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T(lang, i18n.KeyInvalidCredentials)})
			return
		}

		token, err := middleware.GenerateToken(&user, secret, tokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": i18n.T(lang, i18n.KeyLoginSuccess),
			"token":   token,
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
				"role":  user.Role,
			},
		})
	}
}

type PhoneRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Language string `json:"language"`
}

// ForgotPassword regenerates and redispatches the OTP for a reset flow.
func ForgotPassword(db *gorm.DB, sender services.OTPSender, otpTTL time.Duration) gin.HandlerFunc {
	return regenerateOTP(db, sender, otpTTL, i18n.KeyOTPSent)
}

// ResendOTP overwrites the stored code with a fresh one.
func ResendOTP(db *gorm.DB, sender services.OTPSender, otpTTL time.Duration) gin.HandlerFunc {
	return regenerateOTP(db, sender, otpTTL, i18n.KeyOTPResent)
}

func regenerateOTP(db *gorm.DB, sender services.OTPSender, otpTTL time.Duration, successKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		lang := i18n.Normalize(req.Language)

		var user models.User
		if err := db.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T(lang, i18n.KeyUserNotFound)})
			return
		}

		otp, err := services.GenerateOTP()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}
		expiry := time.Now().Add(otpTTL)
		if err := db.Model(&user).Updates(map[string]interface{}{
			"otp":            otp,
			"otp_expires_at": expiry,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}

		if err := sender.Send(c.Request.Context(), user.Phone, otp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, successKey)})
	}
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
	Language    string `json:"language"`
}

// ResetPassword replaces the password hash after an OTP match.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		lang := i18n.Normalize(req.Language)

		var user models.User
		if err := db.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T(lang, i18n.KeyUserNotFound)})
			return
		}
		if !otpMatches(&user, req.OTP) {
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T(lang, i18n.KeyInvalidOTP)})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
			return
		}
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password_hash":  string(hash),
			"otp":            "",
			"otp_expires_at": nil,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang, i18n.KeyPasswordReset)})
	}
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Avatar      string `json:"avatar"`
	Language    string `json:"language"`
}

// UpdateProfile mutates the caller's profile fields; empty fields are left
// untouched.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T(user.Language, i18n.KeyUserNotFound)})
			return
		}

		updates := map[string]interface{}{}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Email != "" {
			updates["email"] = req.Email
		}
		if req.DateOfBirth != "" {
			updates["date_of_birth"] = req.DateOfBirth
		}
		if req.Gender != "" {
			updates["gender"] = req.Gender
		}
		if req.Avatar != "" {
			updates["avatar"] = req.Avatar
		}
		if req.Language != "" {
			updates["language"] = i18n.Normalize(req.Language)
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
				return
			}
		}

		db.First(&user, userID)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// GetProfile returns the authenticated user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": i18n.T("en", i18n.KeyUserNotFound)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
