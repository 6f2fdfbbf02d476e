package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mobile-barber/internal/auth"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
)

const ContextSession = "session"

type TokenParser interface {
	Parse(token string) (auth.Claims, error)
}

// AuthMiddleware turns a bearer token into a session.Session. The admin flag
// comes from the authorizer, never from the token.
func AuthMiddleware(tokens TokenParser, authz auth.Authorizer, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_token", "Authorization token required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		isAdmin, err := authz.IsAdmin(c.Request.Context(), claims.CustomerID)
		if err != nil {
			log.Warn("admin lookup failed", "customer_id", claims.CustomerID, "error", err)
			isAdmin = false
		}

		c.Set(ContextSession, session.Session{
			CustomerID: claims.CustomerID,
			Email:      claims.Email,
			IsAdmin:    isAdmin,
		})

		c.Next()
	}
}

// SessionFrom returns the request session; the zero Session when unauthenticated.
func SessionFrom(c *gin.Context) session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Session{}
}

// RequireAdmin rejects non-admin sessions before the handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := SessionFrom(c).RequireAdmin(); err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
