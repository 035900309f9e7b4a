package payment

import (
	"testing"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Фейки покрывают только методы, нужные Verify; остальное берется
// из встроенного интерфейса.

type fakePaymentRepo struct {
	repositories.PaymentRepository
	byOrderID map[string]*models.Payment
}

func newFakePaymentRepo(payments ...*models.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{byOrderID: make(map[string]*models.Payment)}
	for _, p := range payments {
		r.byOrderID[p.OrderID] = p
	}
	return r
}

func (r *fakePaymentRepo) FindByOrderID(db *gorm.DB, orderID string) (*models.Payment, error) {
	p, ok := r.byOrderID[orderID]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) Update(db *gorm.DB, payment *models.Payment) error {
	cp := *payment
	r.byOrderID[payment.OrderID] = &cp
	return nil
}

type fakeInvitationRepo struct {
	repositories.InvitationRepository
	byID map[string]*models.Invitation
}

func (r *fakeInvitationRepo) FindByID(db *gorm.DB, id string) (*models.Invitation, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrInvitationNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvitationRepo) Update(db *gorm.DB, inv *models.Invitation) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func TestVerify_InvalidSignatureMarksPaymentFailed(t *testing.T) {
	payment := &models.Payment{
		UserID:       "user-1",
		InvitationID: "inv-1",
		OrderID:      "order_1",
		Amount:       499,
		Currency:     models.DefaultCurrency,
		Status:       models.PaymentStatusCreated,
	}
	payment.ID = "pay-1"

	invitation := &models.Invitation{UserID: "user-1", IsPaid: false}
	invitation.ID = "inv-1"

	paymentRepo := newFakePaymentRepo(payment)
	invRepo := &fakeInvitationRepo{byID: map[string]*models.Invitation{invitation.ID: invitation}}
	svc := NewService(NewRazorpayGateway("rzp_test_key", "test_secret"), paymentRepo, invRepo, nil)

	_, err := svc.Verify(nil, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_gw_1",
		Signature: "bogus-signature",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPaymentSignature)

	// платеж помечен failed, приглашение не активировано
	stored := paymentRepo.byOrderID["order_1"]
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.False(t, invRepo.byID["inv-1"].IsPaid)

	// failed - терминальный статус, повторная проверка отклоняется
	valid := SignPayload("test_secret", "order_1", "pay_gw_1")
	_, err = svc.Verify(nil, "user-1", &dto.VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_gw_1",
		Signature: valid,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestVerify_ForeignPaymentForbidden(t *testing.T) {
	payment := &models.Payment{
		UserID:  "user-1",
		OrderID: "order_1",
		Status:  models.PaymentStatusCreated,
	}
	paymentRepo := newFakePaymentRepo(payment)
	svc := NewService(NewRazorpayGateway("rzp_test_key", "test_secret"), paymentRepo, &fakeInvitationRepo{}, nil)

	_, err := svc.Verify(nil, "user-2", &dto.VerifyPaymentRequest{
		OrderID:   "order_1",
		PaymentID: "pay_gw_1",
		Signature: "whatever",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	// владелец не проставлен - статус не трогаем
	assert.Equal(t, models.PaymentStatusCreated, paymentRepo.byOrderID["order_1"].Status)
}
