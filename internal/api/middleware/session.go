package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionContextKey = "cart_session"
	SessionHeader     = "X-Cart-Session"
	sessionCookie     = "cart_session"
	cookieMaxAge      = 180 * 24 * 3600 // ~6 months, matches snapshot retention generously
)

// SessionMiddleware resolves the shopper's cart session id: explicit header
// first, then cookie, else a fresh id. The id is echoed back in the response
// header and refreshed in the cookie so clients without cookie support can
// still pin their cart.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sessionID, cookieMaxAge, "/", "", false, true)
		c.Header(SessionHeader, sessionID)
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the cart session id from the Gin context
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
