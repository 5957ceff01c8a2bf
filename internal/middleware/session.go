package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/domain"
	"personal-workspace/internal/service"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session"

const identityContextKey = "identity"

// Authenticator resolves a session token to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Session resolves the session cookie, if any, and stores the identity on the
// context. Requests without a valid session continue anonymously.
func Session(auth Authenticator) gin.HandlerFunc {
	if auth == nil {
		panic("Authenticator cannot be nil for Session middleware")
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(identityContextKey, identity)
			logrus.WithField("user_id", identity.UserID).Debug("Session middleware: user authenticated")
		case errors.Is(err, service.ErrUnauthenticated):
			ClearSessionCookie(c)
		default:
			logrus.WithError(err).Error("Session middleware: failed to resolve session")
		}
		c.Next()
	}
}

// RequireLogin sends anonymous requests back to the index with an error flash.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); ok {
			c.Next()
			return
		}
		logrus.WithField("path", c.Request.URL.Path).Info("Rejected anonymous request")
		AddFlash(c, FlashError, "Please log in first.")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
	}
}

// CurrentIdentity returns the logged-in identity of the request.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok && identity.UserID != 0
}

// SetSessionCookie stores the session token in the browser for ttl.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	setCookie(c, SessionCookie, token, int(ttl/time.Second))
}

func ClearSessionCookie(c *gin.Context) {
	setCookie(c, SessionCookie, "", -1)
}
