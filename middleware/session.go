package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/session"
)

// SessionIDKey is where the session id is kept on the gin context.
const SessionIDKey = "sessionID"

// Session resolves the browser session from its cookie. A missing, forged or
// expired cookie starts a new session and sets a fresh cookie.
func Session(issuer *session.TokenIssuer, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string
		if raw, err := c.Cookie(session.CookieName); err == nil && raw != "" {
			if parsed, err := issuer.Parse(raw); err == nil {
				sid = parsed
			}
		}

		if sid == "" {
			sid = session.NewID()
			token, err := issuer.Issue(sid)
			if err != nil {
				appErr := apperrors.ErrInternalServer
				c.AbortWithStatusJSON(appErr.Code, appErr)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(session.CookieName, token, issuer.MaxAge(), "/", "", secureCookie, true)
		}

		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session.
func GetSessionID(c *gin.Context) (string, error) {
	sid := c.GetString(SessionIDKey)
	if sid == "" {
		return "", errors.New("session ID not found in context")
	}
	return sid, nil
}
