package handlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
	"desidine-api/realtime"
	"desidine-api/statemachine"
)

// generateOrderID builds the human-readable order identifier:
// "OD" + unix millis + 3-digit random suffix.
func generateOrderID() string {
	return fmt.Sprintf("OD%d%d", time.Now().UnixMilli(), rand.Intn(1000))
}

type PlaceOrderRequest struct {
	RestaurantID uint `json:"restaurant" binding:"required"`
	Items        []struct {
		MenuItemID uint `json:"menuItem" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
	Total         float64                   `json:"total" binding:"required,gt=0"`
	PaymentStatus models.OrderPaymentStatus `json:"paymentStatus"`
}

// PlaceOrder snapshots the submitted items into an immutable order and
// deletes the originating cart. Create and delete run in one transaction
// so a failure leaves neither half applied.
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		paymentStatus := req.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = models.PaymentPending
		}

		var items []models.OrderItem
		for _, reqItem := range req.Items {
			var menuItem models.MenuItem
			if err := db.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
				return
			}
			items = append(items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Quantity:   reqItem.Quantity,
				Price:      menuItem.Price,
				Name:       menuItem.Name,
			})
		}

		order := models.Order{
			OrderID:       generateOrderID(),
			UserID:        userID,
			RestaurantID:  req.RestaurantID,
			Items:         items,
			Total:         req.Total,
			Status:        models.StatusPlaced,
			PaymentStatus: paymentStatus,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			var cart models.Cart
			if err := tx.Where("user_id = ? AND restaurant_id = ?", userID, req.RestaurantID).
				First(&cart).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // nothing to clear
				}
				return err
			}
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order"})
			return
		}

		db.Preload("Items").Preload("Restaurant").First(&order, order.ID)
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// GetUserOrders returns a user's orders, newest first, unpaginated.
// Non-admin callers may only list their own.
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		if middleware.GetRole(c) != models.RoleAdmin && uint(requested) != middleware.GetUserID(c) {
			c.JSON(http.StatusForbidden, gin.H{"message": "These orders do not belong to you"})
			return
		}

		var orders []models.Order
		db.Preload("Items").Preload("Restaurant").
			Where("user_id = ?", requested).
			Order("created_at desc").
			Find(&orders)
		c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
	}
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along its lifecycle (admin only).
// Every change is validated against the transition table and pushed to
// the order's subscribers.
func UpdateOrderStatus(db *gorm.DB, pub realtime.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Where("order_id = ?", c.Param("orderId")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := statemachine.CanTransition(order.Status, req.Status, statemachine.ActorAdmin); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":       "Cannot update order status",
				"reason":        err.Error(),
				"current_state": order.Status,
			})
			return
		}

		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
			return
		}

		pub.PublishOrderStatus(order.OrderID, req.Status)
		c.JSON(http.StatusOK, gin.H{"order_id": order.OrderID, "status": req.Status})
	}
}

// CancelOrder cancels the caller's own order from any pre-delivery state.
func CancelOrder(db *gorm.DB, pub realtime.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var order models.Order
		if err := db.Where("order_id = ?", c.Param("orderId")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "This order does not belong to you"})
			return
		}

		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, statemachine.ActorUser); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":       "Cannot cancel order",
				"reason":        err.Error(),
				"current_state": order.Status,
			})
			return
		}

		if err := db.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
			return
		}

		pub.PublishOrderStatus(order.OrderID, models.StatusCancelled)
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.OrderID})
	}
}
