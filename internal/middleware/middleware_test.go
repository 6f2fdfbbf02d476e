package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAuthorizer struct {
	admins map[string]bool
	err    error
}

func (f fakeAuthorizer) IsAdmin(_ context.Context, id string) (bool, error) {
	return f.admins[id], f.err
}

func newEngine(tokens TokenParser, authz auth.Authorizer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens, authz, discard())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"customer_id": s.CustomerID, "is_admin": s.IsAdmin})
	})
	r.GET("/x", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newEngine(issuer, fakeAuthorizer{admins: map[string]bool{"boss": true}})

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_token")

	w = get(r, "nonsense")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := issuer.Issue("c1", "c1@example.com")
	require.NoError(t, err)
	w = get(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customer_id":"c1","is_admin":false}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	tok, _ = issuer.Issue("boss", "boss@example.com")
	w = get(r, tok)
	assert.JSONEq(t, `{"customer_id":"boss","is_admin":true}`, w.Body.String())
}

func TestAuthMiddleware_AuthorizerFailureIsNotAdmin(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newEngine(issuer, fakeAuthorizer{admins: map[string]bool{"boss": true}, err: errors.New("db down")})

	tok, _ := issuer.Issue("boss", "boss@example.com")
	w := get(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customer_id":"boss","is_admin":false}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newEngine(issuer, fakeAuthorizer{admins: map[string]bool{"boss": true}}, RequireAdmin())

	tok, _ := issuer.Issue("c1", "c1@example.com")
	w := get(r, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin_only")

	tok, _ = issuer.Issue("boss", "boss@example.com")
	assert.Equal(t, http.StatusOK, get(r, tok).Code)
}

func TestSessionFrom_Empty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, session.Session{}, SessionFrom(c))
}

func TestRateLimiter_NilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(nil, 1, time.Minute, discard())
	r.GET("/x", rl.Limit("test"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
