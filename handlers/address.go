package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
)

type AddressRequest struct {
	Type      models.AddressType `json:"type" binding:"required,oneof=Home Office Other"`
	Name      string             `json:"name" binding:"required"`
	Phone     string             `json:"phone" binding:"required"`
	Address   string             `json:"address" binding:"required"`
	Landmark  string             `json:"landmark"`
	City      string             `json:"city" binding:"required"`
	State     string             `json:"state" binding:"required"`
	Pincode   string             `json:"pincode" binding:"required"`
	IsDefault bool               `json:"is_default"`
}

// ListAddresses returns the caller's addresses, default first, then newest.
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		var addresses []models.Address
		db.Where("user_id = ?", userID).
			Order("is_default desc, created_at desc").
			Find(&addresses)
		c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
	}
}

// AddAddress creates an address; a default write clears the caller's other
// defaults in the same transaction.
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		address := models.Address{
			UserID:    userID,
			Type:      req.Type,
			Name:      req.Name,
			Phone:     req.Phone,
			Address:   req.Address,
			Landmark:  req.Landmark,
			City:      req.City,
			State:     req.State,
			Pincode:   req.Pincode,
			IsDefault: req.IsDefault,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save address"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

// UpdateAddress replaces an address owned by the caller.
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		id := c.Param("id")

		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND id <> ?", userID, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Model(&address).Updates(map[string]interface{}{
				"type":       req.Type,
				"name":       req.Name,
				"phone":      req.Phone,
				"address":    req.Address,
				"landmark":   req.Landmark,
				"city":       req.City,
				"state":      req.State,
				"pincode":    req.Pincode,
				"is_default": req.IsDefault,
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update address"})
			return
		}

		db.First(&address, address.ID)
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}

// DeleteAddress removes an address owned by the caller.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		id := c.Param("id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
	}
}

// SetDefaultAddress makes the given address the caller's single default.
func SetDefaultAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		id := c.Param("id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Address not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			return tx.Model(&address).Update("is_default", true).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to set default address"})
			return
		}

		db.First(&address, address.ID)
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}
