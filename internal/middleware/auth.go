package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/services"
)

// IdentityHeader — заголовок с id пользователя; обязан совпадать с
// user_id внутри токена (защита от подмены заголовка без токена и наоборот).
const IdentityHeader = "X-User-Id"

// список публичных эндпоинтов, которые не требуют токена
func isPublicPath(path string) bool {
	switch path {
	case "/auth/telegram", "/auth/login":
		return true
	}
	if strings.HasPrefix(path, "/swagger") ||
		strings.HasPrefix(path, "/healthz") {
		return true
	}
	return false
}

// AuthMiddleware — периметр: Bearer-токен + заголовок идентичности.
// Отрабатывает до резолвера компании и проверок доступа.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// пропускаем preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		// читаем Authorization
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		// заголовок идентичности обязателен на защищённых путях
		identity := strings.TrimSpace(c.GetHeader(IdentityHeader))
		if identity == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity header"})
			return
		}
		identityID, err := strconv.ParseInt(identity, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity header"})
			return
		}

		// подпись и срок действия (с leeway) проверяет парсер
		claims, err := services.ParseSessionToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// токен обязан принадлежать тому, кем представился клиент
		if claims.UserID != identityID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token does not match identity"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("telegram_id", claims.TelegramID)

		c.Next()
	}
}
