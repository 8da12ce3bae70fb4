package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GatewayOrder is a provider-side payment intent.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit (paise)
	Currency string `json:"currency"`
}

// PaymentGateway creates payment intents with an external provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error)
}

// RazorpayClient talks to the Razorpay Orders API.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    "https://api.razorpay.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(r.keyID, r.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order create: status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("razorpay order decode: %w", err)
	}
	return &order, nil
}

// StubGateway fabricates intents locally, for tests and offline runs.
type StubGateway struct{}

func (StubGateway) CreateOrder(_ context.Context, amountPaise int64, currency, _ string) (*GatewayOrder, error) {
	return &GatewayOrder{
		ID:       "order_" + uuid.NewString(),
		Amount:   amountPaise,
		Currency: currency,
	}, nil
}
