package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/repository"
)

const AdminKeyContextKey = "admin_key"

// AuthMiddleware authenticates back-office requests using an admin API key.
// Keys are stored bcrypt-hashed, so lookup iterates the active keys and
// verifies each one. The key count is tiny (a handful of operators), which
// keeps this acceptable; a busier deployment would add a lookup hash column.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			c.Abort()
			return
		}

		keys, err := repos.AdminKey.ListActive(c.Request.Context())
		if err != nil {
			logger.Error("Failed to load admin keys", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		var matched *domain.AdminKey
		for _, key := range keys {
			if VerifyAPIKey(apiKey, key.KeyHash) {
				matched = key
				break
			}
		}
		if matched == nil {
			logger.Warn("Admin authentication failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		c.Set(AdminKeyContextKey, matched)
		c.Next()
	}
}

// GetAdminKeyFromContext retrieves the authenticated admin key from the Gin context
func GetAdminKeyFromContext(c *gin.Context) (*domain.AdminKey, bool) {
	key, exists := c.Get(AdminKeyContextKey)
	if !exists {
		return nil, false
	}
	k, ok := key.(*domain.AdminKey)
	return k, ok
}

// HashAPIKey hashes an API key using bcrypt
func HashAPIKey(apiKey string) (string, error) {
	// Cost of 10 for API keys (faster than passwords)
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey verifies an API key against a hash
func VerifyAPIKey(apiKey, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}
