package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
)

// GetUserNotifications returns a user's notifications, newest first.
func GetUserNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var notifications []models.Notification
		db.Where("user_id = ?", c.Param("userId")).
			Order("created_at desc").
			Find(&notifications)
		c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
	}
}

type NotificationRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
}

// CreateNotification records a notification for a user.
func CreateNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data"})
			return
		}
		notification := models.Notification{
			UserID: req.UserID,
			Title:  req.Title,
			Body:   req.Body,
		}
		if err := db.Create(&notification).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create notification"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"notification": notification})
	}
}

// MarkNotificationRead flips the read flag.
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var notification models.Notification
		if err := db.First(&notification, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
			return
		}
		if err := db.Model(&notification).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification": notification})
	}
}

// DeleteNotification removes a notification.
func DeleteNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Notification{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete notification"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
	}
}

type DeviceTokenRequest struct {
	Token    string `json:"device_token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios web"`
}

// RegisterDeviceToken saves a device token for push delivery.
func RegisterDeviceToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req DeviceTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		token := models.DeviceToken{
			UserID:   userID,
			Token:    req.Token,
			Platform: req.Platform,
		}
		if err := db.Create(&token).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to register device"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"device_token": token})
	}
}
