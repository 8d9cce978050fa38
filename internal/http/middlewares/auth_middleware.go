package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sikmo/useradmin/internal/auth"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifySessionToken(token string) (*auth.Claims, error)
}

type SessionChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthMiddleware struct {
	jwt      TokenVerifier
	sessions SessionChecker // nil when no revocation store is configured
}

func NewAuthMiddleware(jwt TokenVerifier, sessions SessionChecker) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, sessions: sessions}
}

const SessionCookieName = "session"

const (
	ctxUserIDKey   = "auth.userID"
	ctxUsernameKey = "auth.username"
)

// RequireSession guards the admin pages. Browsers without a valid session
// cookie are bounced to the login form rather than handed a JSON 401.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			redirectToLogin(c)
			return
		}

		claims, err := m.jwt.VerifySessionToken(raw)
		if err != nil {
			redirectToLogin(c)
			return
		}

		if m.sessions != nil {
			revoked, err := m.sessions.IsRevoked(c.Request.Context(), claims.JTI)
			if err != nil || revoked {
				redirectToLogin(c)
				return
			}
		}

		// Stash useful bits of identity on the context
		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUsernameKey, claims.Username)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// Optional helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func UsernameFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUsernameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
