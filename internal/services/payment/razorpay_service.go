package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// Order - заказ, созданный на стороне шлюза.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // в пайсах
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway абстрагирует платежный шлюз: создание заказа и проверка подписи.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// RazorpayGateway - клиент Razorpay Orders API с basic-auth по паре ключей.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder создает заказ на шлюзе. Сумма уже в пайсах.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order creation failed: status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("razorpay response decode failed: %w", err)
	}
	return &order, nil
}

// VerifySignature проверяет подпись чекаута: HMAC-SHA256 от
// "orderID|paymentID" на секретном ключе, hex lowercase. Сравнение
// constant-time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := SignPayload(g.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayload вычисляет каноничную подпись Razorpay для пары order/payment.
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
