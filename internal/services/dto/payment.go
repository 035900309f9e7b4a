package dto

import "inviteme_backend/internal/models"

// CreateOrderRequest - создание заказа на оплату приглашения
type CreateOrderRequest struct {
	InvitationID string `json:"invitationId" binding:"required,uuid"`
}

// CreateOrderResponse - данные для чекаута на клиенте
type CreateOrderResponse struct {
	OrderID  string  `json:"orderId"`
	Amount   int64   `json:"amount"` // в пайсах, как отдает шлюз
	Currency string  `json:"currency"`
	Key      string  `json:"key"` // публичный key_id для виджета
}

// VerifyPaymentRequest - подтверждение оплаты подписью шлюза
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPaymentResponse - результат верификации
type VerifyPaymentResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Invitation *models.Invitation `json:"invitation,omitempty"`
}

// PaymentListResponse - страница платежей
type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// AdminPaymentsResponse - сводка для админа
type AdminPaymentsResponse struct {
	Payments          []models.Payment `json:"payments"`
	TotalRevenue      float64          `json:"totalRevenue"`
	TotalTransactions int64            `json:"totalTransactions"`
}
