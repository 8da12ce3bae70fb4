package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
)

// GetCart returns the caller's cart. No cart reads as an empty item list.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var cart models.Cart
		err := db.Preload("Items.MenuItem").Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

type AddToCartRequest struct {
	RestaurantID uint `json:"restaurant" binding:"required"`
	MenuItemID   uint `json:"menuItem" binding:"required"`
	Quantity     int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart finds-or-creates the (user, restaurant) cart; an existing line
// for the item has its quantity incremented, otherwise a line is appended.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var menuItem models.MenuItem
		if err := db.First(&menuItem, req.MenuItemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
			return
		}

		var cart models.Cart
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ? AND restaurant_id = ?", userID, req.RestaurantID).
				First(&cart).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				cart = models.Cart{UserID: userID, RestaurantID: req.RestaurantID}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
			}

			var line models.CartItem
			if err := tx.Where("cart_id = ? AND menu_item_id = ?", cart.ID, req.MenuItemID).
				First(&line).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				return tx.Create(&models.CartItem{
					CartID:     cart.ID,
					MenuItemID: req.MenuItemID,
					Quantity:   req.Quantity,
				}).Error
			}
			return tx.Model(&line).Update("quantity", line.Quantity+req.Quantity).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
			return
		}

		db.Preload("Items.MenuItem").First(&cart, cart.ID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

type CartItemRequest struct {
	MenuItemID uint `json:"menuItem" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// UpdateCartItem replaces a line's quantity. A zero or negative quantity
// removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req CartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		var line models.CartItem
		if err := db.Where("cart_id = ? AND menu_item_id = ?", cart.ID, req.MenuItemID).
			First(&line).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found in cart"})
			return
		}

		if req.Quantity <= 0 {
			if err := db.Delete(&line).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
				return
			}
		} else {
			if err := db.Model(&line).Update("quantity", req.Quantity).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart"})
				return
			}
		}

		db.Preload("Items.MenuItem").First(&cart, cart.ID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// RemoveCartItem deletes a line by menu item id.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req struct {
			MenuItemID uint `json:"menuItem" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		db.Where("cart_id = ? AND menu_item_id = ?", cart.ID, req.MenuItemID).
			Delete(&models.CartItem{})

		db.Preload("Items.MenuItem").First(&cart, cart.ID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// ClearCart empties the caller's cart.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})

		db.Preload("Items").First(&cart, cart.ID)
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}
