package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sikmo/useradmin/internal/auth"
	"github.com/sikmo/useradmin/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifySessionToken(token string) (*auth.Claims, error) {
	return f.claims, f.err
}

type fakeChecker struct {
	revoked bool
	err     error
	gotJTI  string
}

func (f *fakeChecker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	f.gotJTI = jti
	return f.revoked, f.err
}

func guardedRouter(m *middlewares.AuthMiddleware) *gin.Engine {
	r := gin.New()

	r.GET("/user_list", m.RequireSession(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		name, _ := middlewares.UsernameFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": name})
	})

	return r
}

func TestRequireSession(t *testing.T) {
	validClaims := &auth.Claims{UserID: 7, Username: "admin", TokenType: "session", JTI: "jti-1"}

	tests := []struct {
		name         string
		cookie       string
		verifier     *fakeVerifier
		checker      *fakeChecker
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "no_cookie",
			verifier:     &fakeVerifier{},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "invalid_token",
			cookie:       "bad-token",
			verifier:     &fakeVerifier{err: errors.New("invalid token")},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:       "valid_token_no_store",
			cookie:     "good-token",
			verifier:   &fakeVerifier{claims: validClaims},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid_token_not_revoked",
			cookie:     "good-token",
			verifier:   &fakeVerifier{claims: validClaims},
			checker:    &fakeChecker{},
			wantStatus: http.StatusOK,
		},
		{
			name:         "revoked_session",
			cookie:       "good-token",
			verifier:     &fakeVerifier{claims: validClaims},
			checker:      &fakeChecker{revoked: true},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
		{
			name:         "revocation_check_error",
			cookie:       "good-token",
			verifier:     &fakeVerifier{claims: validClaims},
			checker:      &fakeChecker{err: errors.New("redis down")},
			wantStatus:   http.StatusFound,
			wantLocation: "/login",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var checker middlewares.SessionChecker
			if tt.checker != nil {
				checker = tt.checker
			}

			m := middlewares.NewAuthMiddleware(tt.verifier, checker)
			r := guardedRouter(m)

			req := httptest.NewRequest(http.MethodGet, "/user_list", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewares.SessionCookieName, Value: tt.cookie})
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantLocation != "" {
				if loc := w.Header().Get("Location"); loc != tt.wantLocation {
					t.Fatalf("got location %q, want %q", loc, tt.wantLocation)
				}
			}

			if tt.checker != nil && tt.wantStatus == http.StatusOK && tt.checker.gotJTI != "jti-1" {
				t.Fatalf("revocation check saw jti %q, want jti-1", tt.checker.gotJTI)
			}
		})
	}
}
