package middleware

import (
	"net/http"
	"strings"

	"refhub_backend/internal/auth"
	"refhub_backend/internal/logger"
	"refhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Сохраняем актора в контекст. Сервисы все равно проверяют
		// права сами - middleware только первая линия.
		actor := auth.ActorFromClaims(claims)
		c.Set(actorContextKey, actor)

		ctx := logger.WithUserID(c.Request.Context(), actor.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminMiddleware пускает дальше только администраторов
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || actor.Role != models.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			return
		}
		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}
		if !roleSet[actor.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}
		c.Next()
	}
}

// GetActor извлекает актора из контекста
func GetActor(c *gin.Context) (auth.Actor, bool) {
	val, exists := c.Get(actorContextKey)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := val.(auth.Actor)
	return actor, ok
}
