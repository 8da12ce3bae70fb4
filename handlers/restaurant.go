package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/models"
)

const (
	earthRadiusMeters  = 6371000.0
	defaultMaxDistance = 5000.0
)

// haversineDistance returns the great-circle distance between two
// coordinates in meters.
func haversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// GetNearbyRestaurants returns restaurants within maxDistance meters of
// the given coordinates (default 5000).
func GetNearbyRestaurants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lngStr := c.Query("longitude")
		latStr := c.Query("latitude")
		if lngStr == "" || latStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coordinates required"})
			return
		}
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		lat, errLat := strconv.ParseFloat(latStr, 64)
		if errLng != nil || errLat != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Coordinates required"})
			return
		}

		maxDistance := defaultMaxDistance
		if raw := c.Query("maxDistance"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
				maxDistance = v
			}
		}

		var all []models.Restaurant
		if err := db.Find(&all).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load restaurants"})
			return
		}

		restaurants := make([]models.Restaurant, 0)
		for _, r := range all {
			if haversineDistance(lat, lng, r.Latitude, r.Longitude) <= maxDistance {
				restaurants = append(restaurants, r)
			}
		}

		c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
	}
}

type RestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Latitude    float64  `json:"latitude" binding:"required"`
	Longitude   float64  `json:"longitude" binding:"required"`
	Address     string   `json:"address"`
	Cuisines    []string `json:"cuisines"`
	Rating      float64  `json:"rating"`
	DeliveryFee float64  `json:"delivery_fee"`
	Image       string   `json:"image"`
}

// AddRestaurant creates a restaurant (admin only)
func AddRestaurant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RestaurantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		restaurant := models.Restaurant{
			Name:        req.Name,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Address:     req.Address,
			Cuisines:    req.Cuisines,
			Rating:      req.Rating,
			DeliveryFee: req.DeliveryFee,
			Image:       req.Image,
		}
		if err := db.Create(&restaurant).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create restaurant"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
	}
}

// GetRestaurantMenu returns all menu items for a restaurant.
func GetRestaurantMenu(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var restaurant models.Restaurant
		if err := db.First(&restaurant, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}

		var items []models.MenuItem
		db.Where("restaurant_id = ?", restaurant.ID).Find(&items)
		c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Name, "count": len(items), "menu": items})
	}
}
