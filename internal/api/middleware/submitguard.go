package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// SubmitGuard rejects a checkout submission while another one for the same
// cart session is still in flight. The client disables its submit button,
// but a retried request or a second tab can still race; the guard keeps the
// double-submit window closed on the server side.
type SubmitGuard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inFlight: make(map[string]bool)}
}

// Handler wraps checkout submission routes
func (g *SubmitGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			c.Abort()
			return
		}

		if !g.acquire(sessionID) {
			c.JSON(http.StatusConflict, gin.H{"error": "a submission for this cart is already in progress"})
			c.Abort()
			return
		}
		defer g.release(sessionID)

		c.Next()
	}
}

func (g *SubmitGuard) acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[sessionID] {
		return false
	}
	g.inFlight[sessionID] = true
	return true
}

func (g *SubmitGuard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sessionID)
}
