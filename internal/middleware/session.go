package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/revitalisasi-dashboard/internal/models"
	"github.com/noah-isme/revitalisasi-dashboard/internal/roles"
	appErrors "github.com/noah-isme/revitalisasi-dashboard/pkg/errors"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/response"
)

// ContextSessionKey is the gin context key storing the browser session.
const ContextSessionKey = "currentSession"

// SessionStore resolves session cookies into sessions.
type SessionStore interface {
	Parse(token string) (string, error)
	Load(ctx context.Context, sessionID string) (*models.Session, error)
	Start(ctx context.Context) (*models.Session, string, error)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge int
	Path   string
}

// Session resolves the session cookie into the request context. A missing, forged or expired
// cookie starts a fresh anonymous session and replaces the cookie.
func Session(store SessionStore, cookie CookieConfig, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return func(c *gin.Context) {
		var session *models.Session
		if raw, err := c.Cookie(cookie.Name); err == nil && raw != "" {
			if sid, err := store.Parse(raw); err == nil {
				session, err = store.Load(c.Request.Context(), sid)
				if err != nil {
					logger.Warn("load session failed", zap.String("session_id", sid), zap.Error(err))
					session = nil
				}
			}
		}

		if session == nil {
			fresh, token, err := store.Start(c.Request.Context())
			if err != nil {
				logger.Error("start session failed", zap.Error(err))
				response.Error(c, err)
				c.Abort()
				return
			}
			session = fresh
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookie.Name, token, cookie.MaxAge, cookie.Path, "", cookie.Secure, true)
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session attached by Session, or nil.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// RequireAuth sends sessions without a user to the login page. JSON clients get 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFromContext(c).Authenticated() {
			if WantsJSON(c) {
				response.Error(c, appErrors.ErrUnauthorized)
				c.Abort()
				return
			}
			c.Redirect(http.StatusSeeOther, roles.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// WantsJSON reports whether the client asked for JSON view models instead of HTML.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest")
}
