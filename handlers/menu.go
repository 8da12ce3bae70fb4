package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/models"
)

type MenuItemRequest struct {
	RestaurantID uint    `json:"restaurant_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Image        string  `json:"image"`
	Section      string  `json:"section"`
}

// AddMenuItem creates a menu item under a restaurant (admin only)
func AddMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var restaurant models.Restaurant
		if err := db.First(&restaurant, req.RestaurantID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}

		item := models.MenuItem{
			RestaurantID: req.RestaurantID,
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			Image:        req.Image,
			Section:      req.Section,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create menu item"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"menu_item": item})
	}
}

// ListMenuItems returns all menu items, optionally filtered by restaurant.
func ListMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.MenuItem{})
		if restaurant := c.Query("restaurant"); restaurant != "" {
			query = query.Where("restaurant_id = ?", restaurant)
		}
		var items []models.MenuItem
		query.Find(&items)
		c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
	}
}

type MenuItemUpdateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Section     string  `json:"section"`
}

// UpdateMenuItem mutates an existing menu item (admin only)
func UpdateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
			return
		}

		var req MenuItemUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if req.Price > 0 {
			updates["price"] = req.Price
		}
		if req.Image != "" {
			updates["image"] = req.Image
		}
		if req.Section != "" {
			updates["section"] = req.Section
		}
		if len(updates) > 0 {
			if err := db.Model(&item).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update menu item"})
				return
			}
		}

		db.First(&item, item.ID)
		c.JSON(http.StatusOK, gin.H{"menu_item": item})
	}
}

// DeleteMenuItem removes a menu item (admin only)
func DeleteMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete menu item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
