package handlers

import (
	"net/http"

	"scale-sync-api-server/config"
	"scale-sync-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Cfg config.Config
}

// IssueToken đổi sync secret lấy một JWT ngắn hạn cho operator, dùng để
// mở WebSocket feed và các endpoint observability.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	secret := c.GetHeader("x-sync-secret")
	if !auth.CheckSyncSecret(secret, h.Cfg.Sync) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	token, err := auth.GenerateJWT("operator")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
