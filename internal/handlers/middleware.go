package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
)

const sessionKey = "session"

// SessionResolver turns a bearer token into a session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (auth.Session, error)
}

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

// Authenticate rejects requests without a valid token.
func Authenticate(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthenticated", msgLoginRequired)
			return
		}
		sess, err := r.Resolve(c.Request.Context(), tok)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "unauthenticated", msgLoginRequired)
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal", msgSessionFailed)
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// OptionalAuth resolves a session when a valid token is present and continues anonymously otherwise.
func OptionalAuth(r SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, ok := bearer(c); ok {
			if sess, err := r.Resolve(c.Request.Context(), tok); err == nil {
				c.Set(sessionKey, sess)
			} else {
				_ = c.Error(err)
			}
		}
		c.Next()
	}
}

// RequireAdmin short-circuits non-admin sessions. The services check the role again.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionFrom(c).IsAdmin() {
			abort(c, http.StatusForbidden, "forbidden", msgForbidden)
			return
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Anonymous()
}

// RequestLogger writes one entry per request. Errors attached with c.Error are included.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		if s := sessionFrom(c); s.Authenticated {
			entry = entry.WithField("user_id", s.UserID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
