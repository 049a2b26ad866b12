package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateRefreshToken возвращает непрозрачный refresh token:
// 32 случайных байта в hex (256 бит энтропии).
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken возвращает HMAC-SHA256 хеш токена под серверным секретом.
// Хеш детерминированный - по нему ищем сессию в базе, сырой токен
// в базу не попадает. bcrypt здесь не годится: соль у него случайная
// и поиск по хешу был бы невозможен.
func HashToken(rawToken string) string {
	mac := hmac.New(sha256.New, jwtSecret)
	mac.Write([]byte(rawToken))
	return hex.EncodeToString(mac.Sum(nil))
}
