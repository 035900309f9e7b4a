package services

import (
	"fmt"
	"net/http"
	"time"

	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/config"
	"inviteme_backend/internal/email"
	"inviteme_backend/internal/logger"
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, rawToken, newPassword string) error
}

type authService struct {
	userRepo      repositories.UserRepository
	issuer        *auth.TokenIssuer
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, issuer *auth.TokenIssuer, emailProvider email.Provider) AuthService {
	return &authService{
		userRepo:      userRepo,
		issuer:        issuer,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя. Роль всегда customer:
// админы назначаются только другими админами.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleCustomer,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Login - аутентификация пользователя
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh - новая пара токенов по refresh-токену. Роль перечитывается
// из БД: смена роли действует со следующего refresh.
func (s *authService) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.issuer.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *authService) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		if err := auth.ValidatePassword(req.Password); err != nil {
			return nil, apperrors.ErrWeakPassword
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// ChangePassword - смена пароля при известном текущем
func (s *authService) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.New(apperrors.CodeInvalidCredentials, "auth",
			"Current password is incorrect", http.StatusUnauthorized)
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// RequestPasswordReset - запрос сброса пароля. Существование email не
// раскрывается: ответ одинаков в обоих случаях.
func (s *authService) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		return nil
	}

	raw, hash, err := auth.NewResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expire := time.Now().Add(auth.ResetTokenTTL)
	user.ResetPasswordToken = hash
	user.ResetPasswordExpire = &expire

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.sendPasswordResetEmail(user.Email, raw); err != nil {
		// Письмо не ушло - откатываем токен, иначе повторный запрос
		// получит уже невалидную ссылку
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if rbErr := s.userRepo.Update(db, user); rbErr != nil {
			logger.Error("Failed to roll back reset token", "error", rbErr)
		}
		return apperrors.New(apperrors.CodeExternalServiceError, "auth",
			"Email could not be sent", http.StatusServiceUnavailable).WithError(err)
	}
	return nil
}

// ResetPassword - установка нового пароля по токену из письма.
// При успехе токен затирается (одноразовость).
func (s *authService) ResetPassword(db *gorm.DB, rawToken, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(db, auth.HashResetToken(rawToken))
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) sendPasswordResetEmail(to, rawToken string) error {
	if s.emailProvider == nil {
		return nil
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", config.GetConfig().Server.ClientURL, rawToken)
	return s.emailProvider.SendPasswordReset(to, resetURL)
}
