package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desidine-api/models"
)

func upiVerifyBody(orderID, txnID, status string, amount float64) map[string]interface{} {
	return map[string]interface{}{
		"orderId":       orderID,
		"transactionId": txnID,
		"amount":        amount,
		"status":        status,
		"upiApp":        "gpay",
	}
}

func TestVerifyUPIPaymentSuccessConfirmsOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusPlaced)

	w := env.request(t, http.MethodPost, "/api/payment/upi/verify",
		upiVerifyBody(order.OrderID, "TXN1001", "success", 420), "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	var updated models.Order
	require.NoError(t, env.db.First(&updated, order.ID).Error)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	events := env.pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, order.OrderID, events[0].OrderID)
	assert.Equal(t, models.StatusConfirmed, events[0].Status)

	w = env.request(t, http.MethodGet, "/api/payment/upi/status/"+order.OrderID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	status := decodeBody(t, w)
	payment, ok := status["payment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(models.PaymentStateSuccess), payment["status"])
	assert.Equal(t, "TXN1001", payment["transactionId"])
}

func TestVerifyUPIPaymentUpsertsSingleRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusPlaced)

	w := env.request(t, http.MethodPost, "/api/payment/upi/verify",
		upiVerifyBody(order.OrderID, "TXN1001", "pending", 420), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/payment/upi/verify",
		upiVerifyBody(order.OrderID, "TXN1002", "success", 420), "")
	require.Equal(t, http.StatusOK, w.Code)

	var payments []models.Payment
	require.NoError(t, env.db.Where("order_ref = ?", order.OrderID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStateSuccess, payments[0].Status)
	assert.Equal(t, "TXN1002", payments[0].PaymentID)
	assert.Equal(t, "TXN1002", payments[0].Details["transactionId"])
}

func TestVerifyUPIPaymentFailedLeavesOrderUnpaid(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusPlaced)

	w := env.request(t, http.MethodPost, "/api/payment/upi/verify",
		upiVerifyBody(order.OrderID, "TXN2001", "failed", 420), "")
	require.Equal(t, http.StatusOK, w.Code)

	var unchanged models.Order
	require.NoError(t, env.db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.PaymentPending, unchanged.PaymentStatus)
	assert.Equal(t, models.StatusPlaced, unchanged.Status)
	assert.Empty(t, env.pub.all())
}

func TestGetUPIPaymentStatusNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodGet, "/api/payment/upi/status/OD0000", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitiatePaymentCreatesPendingRecord(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusPlaced)
	token := env.token(t, user)

	w := env.request(t, http.MethodPost, "/api/payment/initiate", map[string]interface{}{
		"orderId":  order.OrderID,
		"amount":   420.0,
		"provider": "razorpay",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	intentID, _ := body["orderId"].(string)
	assert.True(t, strings.HasPrefix(intentID, "order_"))
	assert.EqualValues(t, 42000, body["amount"]) // paise
	assert.Equal(t, "INR", body["currency"])

	var payment models.Payment
	require.NoError(t, env.db.Where("order_ref = ?", order.OrderID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatePending, payment.Status)
	assert.Equal(t, intentID, payment.PaymentID)
	require.NotNil(t, payment.UserID)
	assert.Equal(t, user.ID, *payment.UserID)
}

func TestInitiatePaymentRetryReplacesIntent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	rest := env.createRestaurant(t, "Spice Villa", 12.9716, 77.5946)
	order := env.createOrder(t, user.ID, rest.ID, models.StatusPlaced)
	token := env.token(t, user)

	body := map[string]interface{}{
		"orderId":  order.OrderID,
		"amount":   420.0,
		"provider": "razorpay",
	}

	w := env.request(t, http.MethodPost, "/api/payment/initiate", body, token)
	require.Equal(t, http.StatusOK, w.Code)
	firstIntent, _ := decodeBody(t, w)["orderId"].(string)

	// abandoned checkout, user retries
	w = env.request(t, http.MethodPost, "/api/payment/initiate", body, token)
	require.Equal(t, http.StatusOK, w.Code)
	secondIntent, _ := decodeBody(t, w)["orderId"].(string)
	assert.NotEqual(t, firstIntent, secondIntent)

	var payments []models.Payment
	require.NoError(t, env.db.Where("order_ref = ?", order.OrderID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, secondIntent, payments[0].PaymentID)
	assert.Equal(t, models.PaymentStatePending, payments[0].Status)
}

func TestInitiatePaymentRejectsOtherProviders(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	token := env.token(t, user)

	w := env.request(t, http.MethodPost, "/api/payment/initiate", map[string]interface{}{
		"orderId":  "OD123",
		"amount":   100.0,
		"provider": "paytm",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentWebhook(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "9876543210", "asha@example.com", models.RoleUser)
	payment := models.Payment{
		OrderRef:  "OD555",
		UserID:    &user.ID,
		Amount:    250,
		Provider:  models.ProviderRazorpay,
		Status:    models.PaymentStatePending,
		PaymentID: "order_abc123",
	}
	require.NoError(t, env.db.Create(&payment).Error)

	w := env.request(t, http.MethodPost, "/api/payment/verify", map[string]interface{}{
		"paymentId": "order_abc123",
		"status":    "success",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Payment
	require.NoError(t, env.db.First(&updated, payment.ID).Error)
	assert.Equal(t, models.PaymentStateSuccess, updated.Status)

	w = env.request(t, http.MethodPost, "/api/payment/verify", map[string]interface{}{
		"paymentId": "order_missing",
		"status":    "failed",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaytmAndPhonePeNotImplemented(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/payment/paytm", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = env.request(t, http.MethodPost, "/api/payment/phonepe", map[string]interface{}{}, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
