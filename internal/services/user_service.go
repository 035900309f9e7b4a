package services

import (
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService - админские операции над пользователями.
type UserService interface {
	GetAll(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error)
	GetByID(db *gorm.DB, id string) (*dto.UserResponse, error)
	UpdateRole(db *gorm.DB, adminID, userID string, role models.UserRole) (*dto.UserResponse, error)
	GetDashboardStats(db *gorm.DB) (*dto.DashboardStats, error)
}

type userService struct {
	userRepo       repositories.UserRepository
	invitationRepo repositories.InvitationRepository
	paymentRepo    repositories.PaymentRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	invitationRepo repositories.InvitationRepository,
	paymentRepo repositories.PaymentRepository,
) UserService {
	return &userService{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		paymentRepo:    paymentRepo,
	}
}

func (s *userService) GetAll(db *gorm.DB, page, pageSize int) (*dto.UserListResponse, error) {
	users, err := s.userRepo.FindAll(db, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.NewUserResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Users:    out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *userService) GetByID(db *gorm.DB, id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// UpdateRole меняет роль пользователя. Админ не может понизить сам себя:
// иначе площадка может остаться без админов.
func (s *userService) UpdateRole(db *gorm.DB, adminID, userID string, role models.UserRole) (*dto.UserResponse, error) {
	if adminID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}
	if !models.ValidUserRole(role) {
		return nil, apperrors.NewBadRequestError("Invalid role")
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	user.Role = role
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// GetDashboardStats собирает агрегаты для админской панели.
func (s *userService) GetDashboardStats(db *gorm.DB) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalCustomers, err = s.userRepo.CountByRole(db, models.UserRoleCustomer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalInvitations, err = s.invitationRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.PublishedInvitations, err = s.invitationRepo.CountByStatus(db, models.InvitationStatusPublished); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalRevenue, err = s.paymentRepo.SumCaptured(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
