package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/middleware"
	"desidine-api/models"
	"desidine-api/realtime"
	"desidine-api/services"
	"desidine-api/statemachine"
)

type InitiatePaymentRequest struct {
	OrderID  string                 `json:"orderId" binding:"required"`
	Amount   float64                `json:"amount" binding:"required,gt=0"`
	Provider models.PaymentProvider `json:"provider" binding:"required"`
}

// InitiatePayment creates a provider-side intent and a local pending
// Payment keyed by the order identifier.
func InitiatePayment(db *gorm.DB, gateway services.PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req InitiatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if req.Provider != models.ProviderRazorpay {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only Razorpay supported in demo"})
			return
		}

		// Razorpay amounts are expressed in paise.
		intent, err := gateway.CreateOrder(c.Request.Context(), int64(req.Amount*100), "INR", req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "Payment provider unavailable"})
			return
		}

		// Retrying an abandoned checkout re-points the existing record at
		// the fresh intent instead of violating the order_ref index.
		err = db.Transaction(func(tx *gorm.DB) error {
			var payment models.Payment
			if err := tx.Where("order_ref = ?", req.OrderID).First(&payment).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				return tx.Create(&models.Payment{
					OrderRef:  req.OrderID,
					UserID:    &userID,
					Amount:    req.Amount,
					Provider:  req.Provider,
					Status:    models.PaymentStatePending,
					PaymentID: intent.ID,
				}).Error
			}
			return tx.Model(&payment).Updates(map[string]interface{}{
				"user_id":    userID,
				"amount":     req.Amount,
				"provider":   req.Provider,
				"status":     models.PaymentStatePending,
				"payment_id": intent.ID,
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orderId":  intent.ID,
			"amount":   intent.Amount,
			"currency": intent.Currency,
		})
	}
}

type VerifyPaymentRequest struct {
	PaymentID string              `json:"paymentId" binding:"required"`
	Status    models.PaymentState `json:"status" binding:"required,oneof=pending success failed"`
}

// VerifyPayment is the gateway webhook: it overwrites the status of the
// payment matching the provider's intent id.
func VerifyPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var payment models.Payment
		if err := db.Where("payment_id = ?", req.PaymentID).First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		if err := db.Model(&payment).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update payment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
	}
}

type VerifyUPIRequest struct {
	OrderID       string              `json:"orderId" binding:"required"`
	TransactionID string              `json:"transactionId" binding:"required"`
	Amount        float64             `json:"amount" binding:"required,gt=0"`
	Status        models.PaymentState `json:"status" binding:"required,oneof=pending success failed"`
	UPIApp        string              `json:"upiApp"`
}

// VerifyUPIPayment upserts the payment for an order and, on success,
// marks the order paid and confirms it. The upsert and both order writes
// run in a single transaction so concurrent verifies serialize instead
// of diverging.
func VerifyUPIPayment(db *gorm.DB, pub realtime.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyUPIRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		var userID *uint
		if v, exists := c.Get("userID"); exists {
			id := v.(uint)
			userID = &id
		}

		var payment models.Payment
		var confirmed bool
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_ref = ?", req.OrderID).First(&payment).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				payment = models.Payment{
					OrderRef:  req.OrderID,
					UserID:    userID,
					Amount:    req.Amount,
					Provider:  models.ProviderUPI,
					Status:    req.Status,
					PaymentID: req.TransactionID,
					UPIApp:    upiAppOrUnknown(req.UPIApp),
					Method:    "upi",
					Details: models.JSONMap{
						"upiApp":        req.UPIApp,
						"transactionId": req.TransactionID,
						"timestamp":     time.Now().Format(time.RFC3339),
					},
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
			} else {
				details := payment.Details
				if details == nil {
					details = models.JSONMap{}
				}
				details["upiApp"] = req.UPIApp
				details["transactionId"] = req.TransactionID
				details["lastUpdated"] = time.Now().Format(time.RFC3339)

				updates := map[string]interface{}{
					"status":     req.Status,
					"payment_id": req.TransactionID,
					"details":    details,
				}
				if req.UPIApp != "" {
					updates["upi_app"] = req.UPIApp
				}
				if err := tx.Model(&payment).Updates(updates).Error; err != nil {
					return err
				}
			}

			if req.Status != models.PaymentStateSuccess {
				return nil
			}

			var order models.Order
			if err := tx.Where("order_id = ?", req.OrderID).First(&order).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // payment recorded against an unknown order, as in source
				}
				return err
			}

			updates := map[string]interface{}{}
			if statemachine.CanTransitionPayment(order.PaymentStatus, models.PaymentPaid) == nil {
				updates["payment_status"] = models.PaymentPaid
			}
			if statemachine.CanTransition(order.Status, models.StatusConfirmed, statemachine.ActorSystem) == nil {
				updates["status"] = models.StatusConfirmed
				confirmed = true
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&order).Updates(updates).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment verification failed"})
			return
		}

		if confirmed {
			pub.PublishOrderStatus(req.OrderID, models.StatusConfirmed)
		}

		db.Where("order_ref = ?", req.OrderID).First(&payment)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment " + string(req.Status),
			"payment": upiPaymentView(&payment),
		})
	}
}

func upiAppOrUnknown(app string) string {
	if app == "" {
		return "unknown"
	}
	return app
}

func upiPaymentView(p *models.Payment) gin.H {
	return gin.H{
		"orderId":       p.OrderRef,
		"transactionId": p.PaymentID,
		"amount":        p.Amount,
		"status":        p.Status,
		"upiApp":        p.UPIApp,
		"timestamp":     p.CreatedAt,
		"lastUpdated":   p.UpdatedAt,
	}
}

// GetUPIPaymentStatus is a point lookup of the payment for an order.
func GetUPIPaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		if err := db.Where("order_ref = ?", c.Param("orderId")).First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "payment": upiPaymentView(&payment)})
	}
}

// InitiatePaytm is a placeholder for a future provider integration.
func InitiatePaytm() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{"message": "Paytm integration coming soon"})
	}
}

// InitiatePhonePe is a placeholder for a future provider integration.
func InitiatePhonePe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{"message": "PhonePe integration coming soon"})
	}
}
