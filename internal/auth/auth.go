// server/internal/auth/auth.go
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"scale-sync-api-server/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTClaims defines the payload for operator tokens.
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var (
	jwtSecret     []byte
	jwtExpiration = 24 * time.Hour
)

// Init nạp secret và thời hạn token từ config; phải gọi trước khi
// GenerateJWT/ParseJWT được dùng.
func Init(cfg config.JWTConfig) error {
	if cfg.Secret == "" {
		return fmt.Errorf("auth: JWT_SECRET is required")
	}
	jwtSecret = []byte(cfg.Secret)

	if cfg.Expiration != "" {
		d, err := time.ParseDuration(cfg.Expiration)
		if err != nil {
			return fmt.Errorf("auth: invalid JWT_EXPIRATION %q: %w", cfg.Expiration, err)
		}
		jwtExpiration = d
	}
	return nil
}

// Hashing
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), 14)
	return string(bytes), err
}

func CheckSecretHash(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// CheckSyncSecret so sánh secret gửi lên với cấu hình: ưu tiên bcrypt
// hash nếu có, nếu không thì so sánh constant-time với plaintext.
func CheckSyncSecret(provided string, cfg config.SyncConfig) bool {
	if provided == "" {
		return false
	}
	if cfg.SecretHash != "" {
		return CheckSecretHash(provided, cfg.SecretHash)
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.Secret)) == 1
}

// JWT Generation
func GenerateJWT(role string) (string, error) {
	expirationTime := time.Now().Add(jwtExpiration)
	claims := &JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT xác thực token và trả về claims.
func ParseJWT(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}
	return claims, nil
}
