package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"artifai/internal/app"
	"artifai/internal/logging"
	"artifai/internal/pkg/jwtutil"
	"artifai/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
	ContextSessionKey  = "session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwtutil.Claims, error)
}

// LoadSession attaches the caller's identity when the session cookie (or a
// bearer token) is valid. It never rejects; see RequireUser and RequirePageUser.
func LoadSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, app.ErrUnauthenticated) {
				logging.FromContext(c.Request.Context()).Warn().Err(err).Msg("session check failed")
			}
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}

// RequireUser rejects anonymous API calls with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			response.AbortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

// RequirePageUser sends anonymous page visits to the login page, keeping the
// requested path in ?next=.
func RequirePageUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok && userID != 0
}

func Session(c *gin.Context) (*jwtutil.Claims, bool) {
	sessionAny, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	claims, ok := sessionAny.(*jwtutil.Claims)
	return claims, ok
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if strings.HasPrefix(authHeader, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	}
	return ""
}
