package models

// DefaultCurrency — валюта площадки; платежный шлюз принимает суммы в пайсах.
const DefaultCurrency = "INR"

// Payment — запись об оплате приглашения. OrderID создается шлюзом на шаге
// создания заказа; PaymentID и Signature появляются после верификации.
// Captured и Failed — терминальные статусы, из них запись не выводится.
type Payment struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	InvitationID string      `gorm:"type:uuid;not null;index" json:"invitation_id"`
	Invitation   *Invitation `gorm:"foreignKey:InvitationID" json:"-"`

	OrderID          string `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id,omitempty"`
	Signature        string `json:"-"`

	Amount   float64       `gorm:"not null" json:"amount"` // в основных единицах валюты
	Currency string        `gorm:"default:'INR'" json:"currency"`
	Status   PaymentStatus `gorm:"type:varchar(20);default:'created';index" json:"status"`
}

// IsTerminal — true для captured и failed.
func (p *Payment) IsTerminal() bool {
	return p.Status == PaymentStatusCaptured || p.Status == PaymentStatusFailed
}
