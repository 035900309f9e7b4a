package payment

import (
	"context"
	"fmt"
	"math"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type Service interface {
	CreateOrder(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	Verify(db *gorm.DB, userID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
	GetMyPayments(db *gorm.DB, userID string, page, pageSize int) (*dto.PaymentListResponse, error)
	GetAllPayments(db *gorm.DB, page, pageSize int) (*dto.AdminPaymentsResponse, error)
}

type service struct {
	gateway        Gateway
	paymentRepo    repositories.PaymentRepository
	invitationRepo repositories.InvitationRepository
	templateRepo   repositories.TemplateRepository
}

func NewService(
	gateway Gateway,
	paymentRepo repositories.PaymentRepository,
	invitationRepo repositories.InvitationRepository,
	templateRepo repositories.TemplateRepository,
) Service {
	return &service{
		gateway:        gateway,
		paymentRepo:    paymentRepo,
		invitationRepo: invitationRepo,
		templateRepo:   templateRepo,
	}
}

// CreateOrder создает заказ на оплату приглашения. Сумма определяется
// сервером: цена premium-шаблона или снапшот цены scratch-дизайна,
// клиентские суммы не принимаются.
func (s *service) CreateOrder(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	invitation, err := s.invitationRepo.FindByID(db, req.InvitationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if invitation.UserID != userID {
		return nil, apperrors.NewForbiddenError("Not authorized")
	}
	if invitation.IsPaid {
		return nil, apperrors.ErrAlreadyPaid
	}

	var amountRupees float64
	if invitation.TemplateID != nil {
		template, err := s.templateRepo.FindByID(db, *invitation.TemplateID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !template.IsPremium {
			return nil, apperrors.ErrInvalidOperation("payment", "This template is free, no payment required")
		}
		amountRupees = template.Price
	} else {
		if invitation.Price <= 0 {
			return nil, apperrors.ErrInvalidOperation("payment", "Invalid price for this invitation")
		}
		amountRupees = invitation.Price
	}

	amountPaise := RupeesToPaise(amountRupees)
	receipt := fmt.Sprintf("receipt_%s", invitation.ID)

	order, err := s.gateway.CreateOrder(ctx, amountPaise, models.DefaultCurrency, receipt)
	if err != nil {
		return nil, apperrors.ErrPaymentGateway.WithError(err)
	}

	payment := &models.Payment{
		UserID:       userID,
		InvitationID: invitation.ID,
		OrderID:      order.ID,
		Amount:       amountRupees,
		Currency:     models.DefaultCurrency,
		Status:       models.PaymentStatusCreated,
	}
	if err := s.paymentRepo.Create(db, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Key:      s.gateway.KeyID(),
	}, nil
}

// Verify проверяет подпись шлюза и атомарно переводит платеж в captured,
// а приглашение в paid+published. Неверная подпись помечает платеж failed.
func (s *service) Verify(db *gorm.DB, userID string, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	payment, err := s.paymentRepo.FindByOrderID(db, req.OrderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if payment.UserID != userID {
		return nil, apperrors.NewForbiddenError("Not authorized")
	}
	if payment.IsTerminal() {
		return nil, apperrors.ErrInvalidStatus("payment", "Payment is already finalized")
	}

	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		payment.Status = models.PaymentStatusFailed
		if err := s.paymentRepo.Update(db, payment); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrInvalidPaymentSignature
	}

	var invitation *models.Invitation
	err = db.Transaction(func(tx *gorm.DB) error {
		payment.GatewayPaymentID = req.PaymentID
		payment.Signature = req.Signature
		payment.Status = models.PaymentStatusCaptured
		if err := s.paymentRepo.Update(tx, payment); err != nil {
			return err
		}

		invitation, err = s.invitationRepo.FindByID(tx, payment.InvitationID)
		if err != nil {
			return err
		}
		invitation.IsPaid = true
		invitation.PaymentID = &payment.ID
		invitation.Status = models.InvitationStatusPublished
		return s.invitationRepo.Update(tx, invitation)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.VerifyPaymentResponse{
		Success:    true,
		Message:    "Payment verified successfully",
		Invitation: invitation,
	}, nil
}

func (s *service) GetMyPayments(db *gorm.DB, userID string, page, pageSize int) (*dto.PaymentListResponse, error) {
	payments, total, err := s.paymentRepo.FindByUser(db, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PaymentListResponse{
		Payments: payments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *service) GetAllPayments(db *gorm.DB, page, pageSize int) (*dto.AdminPaymentsResponse, error) {
	payments, total, err := s.paymentRepo.FindAll(db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	revenue, err := s.paymentRepo.SumCaptured(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AdminPaymentsResponse{
		Payments:          payments,
		TotalRevenue:      revenue,
		TotalTransactions: total,
	}, nil
}

// RupeesToPaise конвертирует сумму в минимальные единицы валюты,
// округляя до ближайшего пайса.
func RupeesToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}
