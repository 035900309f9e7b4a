package auth

import (
	"testing"
	"time"

	"inviteme_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour, false)
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()

	pair, err := issuer.GeneratePair("user-1", models.UserRoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleCustomer, claims.Role)

	// refresh несет только идентификатор, роль перечитывается из БД
	refreshClaims, err := issuer.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

func TestParse_CrossTokenRejected(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()

	pair, err := issuer.GeneratePair("user-1", models.UserRoleAdmin)
	require.NoError(t, err)

	// access-токен не проходит как refresh и наоборот
	_, err = issuer.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	other := NewTokenIssuer("other-access", "other-refresh", 15*time.Minute, 7*24*time.Hour, false)

	pair, err := issuer.GeneratePair("user-1", models.UserRoleCustomer)
	require.NoError(t, err)

	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_ExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour, false)

	pair, err := issuer.GeneratePair("user-1", models.UserRoleCustomer)
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()

	_, err := issuer.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewResetToken(t *testing.T) {
	t.Parallel()

	raw, hash, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 40) // 20 байт в hex
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashResetToken(raw))

	raw2, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
}
