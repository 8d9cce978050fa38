package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sikmo/useradmin/internal/auth"
	"github.com/sikmo/useradmin/internal/config"
	"github.com/sikmo/useradmin/internal/domain/user"
	"github.com/sikmo/useradmin/internal/security"
)

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

type AuthHandler struct {
	users    UserReader
	jwt      *auth.Manager
	sessions SessionRevoker // nil when no revocation store is configured
	cfg      config.Config
}

func NewAuthHandler(users UserReader, jwtManager *auth.Manager, sessions SessionRevoker, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:    users,
		jwt:      jwtManager,
		sessions: sessions,
		cfg:      cfg,
	}
}

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *AuthHandler) Root(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginForm(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login", gin.H{})
}

// Login checks the submitted credentials against the stored bcrypt hash.
// Bad credentials are a normal render of the login view, never an error
// status; only token issuance failures hit the 500 path.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	// no validation tier here, fields map through as-is
	_ = ctx.ShouldBind(&req)

	// short timeout for the DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByUsername(cctx, req.Username)
	if err != nil {
		ctx.HTML(http.StatusOK, "login", gin.H{"error": "Invalid username or password"})
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		ctx.HTML(http.StatusOK, "login", gin.H{"error": "Invalid username or password"})
		return
	}

	token, _, expiresAt, err := h.jwt.GenerateSessionToken(foundUser.ID, foundUser.Username)

	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	h.setSessionCookie(ctx, token, expiresAt)

	ctx.Redirect(http.StatusFound, "/user_list")
}

// Logout revokes the session id (when a store is configured) and clears
// the cookie. Always lands back on the login form.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	raw, err := ctx.Cookie(sessionCookieName)

	if err == nil && raw != "" && h.sessions != nil {
		claims, err := h.jwt.VerifySessionToken(raw)

		if err == nil {
			cctx, cancel := config.WithTimeout(2 * time.Second)
			defer cancel()

			// revocation is idempotent, a failure just shortens nothing
			_ = h.sessions.Revoke(cctx, claims.JTI, time.Until(claims.ExpiresAt.Time))
		}
	}

	h.clearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/login")
}

// Cookie helpers

const sessionCookieName = "session"

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, raw string, expiresAt time.Time) {
	secure := h.cfg.Env == "prod"

	maxAge := int(time.Until(expiresAt).Seconds())

	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		sessionCookieName,
		raw,
		maxAge,
		"/",
		"",
		secure,
		true, // HttpOnly.
	)
}

func (h *AuthHandler) clearSessionCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		sessionCookieName,
		"",
		-1,
		"/",
		"",
		secure,
		true,
	)
}
