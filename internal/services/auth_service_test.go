package services

import (
	"errors"
	"testing"
	"time"

	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/config"
	"inviteme_backend/internal/email"
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byID map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, emailAddr string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == emailAddr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetToken(db *gorm.DB, tokenHash string) (*models.User, error) {
	for _, u := range r.byID {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(db *gorm.DB, user *models.User) error {
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	if u, ok := r.byID[userID]; ok {
		u.Role = role
	}
	return nil
}

func (r *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	delete(r.byID, userID)
	return nil
}

func (r *fakeUserRepo) FindAll(db *gorm.DB, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll(db *gorm.DB) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeUserRepo) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeEmailProvider фиксирует отправки; err != nil имитирует упавший SMTP
type fakeEmailProvider struct {
	err  error
	sent []string
}

func (p *fakeEmailProvider) Send(msg *email.Email) error { return p.err }

func (p *fakeEmailProvider) SendPasswordReset(to, resetURL string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, resetURL)
	return nil
}

func (p *fakeEmailProvider) Validate() error { return nil }

func (p *fakeEmailProvider) Close() error { return nil }

func newAuthTestService(t *testing.T, provider email.Provider) (AuthService, *fakeUserRepo) {
	t.Helper()
	config.AppConfig = &config.Config{}
	config.AppConfig.Server.ClientURL = "http://localhost:5173"

	repo := newFakeUserRepo()
	issuer := auth.NewTokenIssuer("a-secret", "r-secret", 15*time.Minute, 7*24*time.Hour, false)
	return NewAuthService(repo, issuer, provider), repo
}

func registerTestUser(t *testing.T, svc AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(nil, &dto.RegisterRequest{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthTestService(t, &fakeEmailProvider{})

	resp := registerTestUser(t, svc)
	assert.Equal(t, models.UserRoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(nil, &dto.RegisterRequest{
			Name:     "Other",
			Email:    "user@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("login ok", func(t *testing.T) {
		got, err := svc.Login(nil, &dto.LoginRequest{Email: "user@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, got.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(nil, &dto.LoginRequest{Email: "user@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(nil, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthRefresh_RereadsRole(t *testing.T) {
	svc, repo := newAuthTestService(t, &fakeEmailProvider{})
	resp := registerTestUser(t, svc)

	repo.byID[resp.User.ID].Role = models.UserRoleAdmin

	got, err := svc.Refresh(nil, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, got.User.Role)

	_, err = svc.Refresh(nil, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordReset_Flow(t *testing.T) {
	provider := &fakeEmailProvider{}
	svc, repo := newAuthTestService(t, provider)
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.RequestPasswordReset(nil, "user@example.com"))
	require.Len(t, provider.sent, 1)

	stored := repo.byID[resp.User.ID]
	assert.NotEmpty(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpire)
	assert.WithinDuration(t, time.Now().Add(auth.ResetTokenTTL), *stored.ResetPasswordExpire, time.Minute)

	// сырой токен - последний сегмент ссылки из письма
	resetURL := provider.sent[0]
	rawToken := resetURL[len("http://localhost:5173/reset-password/"):]

	require.NoError(t, svc.ResetPassword(nil, rawToken, "newpassword1"))

	stored = repo.byID[resp.User.ID]
	assert.Empty(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)

	// токен одноразовый
	assert.ErrorIs(t, svc.ResetPassword(nil, rawToken, "anotherpass1"), apperrors.ErrInvalidToken)

	// старый пароль больше не подходит
	_, err := svc.Login(nil, &dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(nil, &dto.LoginRequest{Email: "user@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestPasswordReset_UnknownEmailSilent(t *testing.T) {
	svc, _ := newAuthTestService(t, &fakeEmailProvider{})
	assert.NoError(t, svc.RequestPasswordReset(nil, "ghost@example.com"))
}

func TestPasswordReset_RollbackOnSendFailure(t *testing.T) {
	provider := &fakeEmailProvider{err: errors.New("smtp down")}
	svc, repo := newAuthTestService(t, provider)
	resp := registerTestUser(t, svc)

	err := svc.RequestPasswordReset(nil, "user@example.com")
	require.Error(t, err)

	// неотправленный токен не должен остаться в базе
	stored := repo.byID[resp.User.ID]
	assert.Empty(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)
}
