package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL — срок действия токена сброса пароля.
const ResetTokenTTL = 10 * time.Minute

// NewResetToken возвращает сырой токен (уходит в письме) и его sha256-хеш
// (хранится в БД). Сырой токен в базу не попадает.
func NewResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken — sha256 от сырого токена, для поиска в БД.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
