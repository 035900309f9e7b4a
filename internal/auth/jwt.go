package auth

import (
	"errors"
	"net/http"
	"time"

	"inviteme_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Имена http-only cookie, в которых живет пара токенов.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Claims — полезная нагрузка access-токена. Refresh-токен несет только
// UserID: роль перечитывается из БД на каждом refresh.
type Claims struct {
	UserID string          `json:"id"`
	Role   models.UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет пару JWT access/refresh.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, secureCookies bool) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

// TokenPair — пара выпущенных токенов (дублируется в теле ответа
// для клиентов без cookie).
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GeneratePair выпускает access (15 мин) и refresh (7 дней) токены.
func (ti *TokenIssuer) GeneratePair(userID string, role models.UserRole) (*TokenPair, error) {
	now := time.Now()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
		},
	}).SignedString(ti.accessSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.refreshTTL)),
		},
	}).SignedString(ti.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess проверяет подпись и срок access-токена.
func (ti *TokenIssuer) ParseAccess(tokenStr string) (*Claims, error) {
	return ti.parse(tokenStr, ti.accessSecret)
}

// ParseRefresh проверяет подпись и срок refresh-токена.
func (ti *TokenIssuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return ti.parse(tokenStr, ti.refreshSecret)
}

func (ti *TokenIssuer) parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetAuthCookies кладет пару токенов в http-only cookie с maxAge равным TTL.
func (ti *TokenIssuer) SetAuthCookies(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(ti.sameSite())
	c.SetCookie(AccessCookie, pair.AccessToken, int(ti.accessTTL.Seconds()), "/", "", ti.secureCookies, true)
	c.SetCookie(RefreshCookie, pair.RefreshToken, int(ti.refreshTTL.Seconds()), "/", "", ti.secureCookies, true)
}

// ClearAuthCookies сбрасывает обе cookie (logout).
func (ti *TokenIssuer) ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(ti.sameSite())
	c.SetCookie(AccessCookie, "", -1, "/", "", ti.secureCookies, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", ti.secureCookies, true)
}

// Кросс-доменный фронтенд требует SameSite=None (и тогда secure обязателен).
func (ti *TokenIssuer) sameSite() http.SameSite {
	if ti.secureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
