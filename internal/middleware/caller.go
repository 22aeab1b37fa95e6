package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/services"
)

// CallerContext — резолвит компанию и роль вызывающего (один keyed-lookup
// на запрос, без кеша) и кладёт в контекст. Работает после AuthMiddleware.
func CallerContext(access services.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		caller, err := access.ResolveCaller(c.Request.Context(), c.GetHeader(IdentityHeader))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingIdentity):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing identity header"})
			case errors.Is(err, services.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			default:
				log.Printf("[caller][err] resolve: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set("caller", caller)
		c.Set("role", caller.Role)
		c.Next()
	}
}
