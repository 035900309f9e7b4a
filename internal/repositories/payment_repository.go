package repositories

import (
	"errors"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, id string) (*models.Payment, error)
	FindByOrderID(db *gorm.DB, orderID string) (*models.Payment, error)
	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, int64, error)
	Update(db *gorm.DB, payment *models.Payment) error

	// Admin
	FindAll(db *gorm.DB, limit, offset int) ([]models.Payment, int64, error)
	SumCaptured(db *gorm.DB) (float64, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByOrderID(db *gorm.DB, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Payment, int64, error) {
	query := db.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepositoryImpl) Update(db *gorm.DB, payment *models.Payment) error {
	return db.Save(payment).Error
}

func (r *PaymentRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Payment, int64, error) {
	var total int64
	if err := db.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := db.Preload("Invitation").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepositoryImpl) SumCaptured(db *gorm.DB) (float64, error) {
	var sum float64
	err := db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCaptured).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
