// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireSyncSecret xác thực trigger sync bằng header x-sync-secret.
// Scheduler bên ngoài (cron, automation platform) gửi secret này mỗi lần gọi.
func RequireSyncSecret(cfg config.SyncConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("x-sync-secret")
		if !auth.CheckSyncSecret(secret, cfg) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// Authenticate là middleware xác thực token JWT cho các endpoint observability.
// Nó kiểm tra tính hợp lệ của token và đưa role vào context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("user_role", claims.Role)
		c.Next()
	}
}
