package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims — содержимое сессионного токена. Токен самодостаточен,
// серверного списка отзыва нет: инвалидация только по истечению срока
// или ротации секрета.
type SessionClaims struct {
	UserID     int64 `json:"user_id"`
	TelegramID int64 `json:"telegram_id"`
	jwt.RegisteredClaims
}

// IssueSessionToken подписывает HS256-токен на ttl вперёд.
func IssueSessionToken(secret []byte, userID, telegramID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:     userID,
		TelegramID: telegramID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// небольшой запас на рассинхрон часов клиента и сервера
const expiryLeeway = 2 * time.Minute

// ParseSessionToken валидирует подпись и срок действия (с leeway)
// и возвращает claims.
func ParseSessionToken(secret []byte, tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// принимаем только HMAC (HS256 и т.п.)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithLeeway(expiryLeeway), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrSignatureMismatch
	}
	return claims, nil
}
