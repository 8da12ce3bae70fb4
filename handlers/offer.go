package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/models"
)

type OfferRequest struct {
	Code   string           `json:"code" binding:"required"`
	Type   models.OfferType `json:"type" binding:"required,oneof=percent amount"`
	Value  float64          `json:"value" binding:"required,gt=0"`
	Expiry time.Time        `json:"expiry" binding:"required"`
}

// AddOffer creates a coupon (admin only)
func AddOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		offer := models.Offer{
			Code:   req.Code,
			Type:   req.Type,
			Value:  req.Value,
			Expiry: req.Expiry,
		}
		if err := db.Create(&offer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create offer"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"offer": offer})
	}
}

// GetAllOffers lists every coupon.
func GetAllOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offers []models.Offer
		db.Find(&offers)
		c.JSON(http.StatusOK, gin.H{"count": len(offers), "offers": offers})
	}
}

// ValidateOffer checks a coupon code exists and has not expired.
func ValidateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var offer models.Offer
		if err := db.Where("code = ?", req.Code).First(&offer).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
			return
		}
		if time.Now().After(offer.Expiry) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Offer expired"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"offer": offer})
	}
}
