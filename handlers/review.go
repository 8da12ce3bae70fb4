package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
)

type ReviewRequest struct {
	OrderID      uint   `json:"order" binding:"required"`
	RestaurantID uint   `json:"restaurant" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

// AddReview records a rating for an order's restaurant.
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		review := models.Review{
			UserID:       userID,
			OrderID:      req.OrderID,
			RestaurantID: req.RestaurantID,
			Rating:       req.Rating,
			Comment:      req.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save review"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

// GetRestaurantReviews lists a restaurant's reviews, newest first.
func GetRestaurantReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		db.Where("restaurant_id = ?", c.Param("restaurantId")).
			Order("created_at desc").
			Find(&reviews)
		c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
	}
}

// GetAverageRating returns the mean rating for a restaurant, 0 when
// there are no reviews.
func GetAverageRating(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var avg *float64
		db.Model(&models.Review{}).
			Where("restaurant_id = ?", c.Param("restaurantId")).
			Select("AVG(rating)").
			Scan(&avg)

		rating := 0.0
		if avg != nil {
			rating = *avg
		}
		c.JSON(http.StatusOK, gin.H{"avgRating": rating})
	}
}
