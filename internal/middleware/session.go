package middleware

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"waste_tracker/internal/domain"  // Principal
	"waste_tracker/internal/session" // Session tokens
)

const (
	principalKey = "principal"     // gin context key of the authenticated principal
	claimsKey    = "sessionClaims" // gin context key of the verified session claims
)

// LoginPath is where unauthenticated requests are sent
const LoginPath = "/login"

// SessionAuthMiddleware resolves the session into a Principal, once per request.
// Requests without a usable session are redirected to the login page; a rejected
// Bearer token is answered with 401 instead, since API clients cannot follow a login form.
func SessionAuthMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, fromHeader := tokenFromRequest(c) // Get the token from header or cookie
		if tokenStr == "" && fromHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		if tokenStr == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		claims, err := sessions.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if !errors.Is(err, session.ErrInvalid) && !errors.Is(err, session.ErrRevoked) {
				// The token may be fine; the revocation list could not be consulted
				logrus.WithField("error", err.Error()).Error("Session check failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			if fromHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
				return
			}
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(principalKey, claims.Principal()) // Store principal in context
		c.Set(claimsKey, claims)                // Keep claims for logout
		c.Next()                                // Proceed to the next handler
	}
}

// PrincipalFrom returns the principal placed by SessionAuthMiddleware
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// ClaimsFrom returns the verified session claims of the request
func ClaimsFrom(c *gin.Context) (*session.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*session.Claims)
	return claims, ok
}

// SetSessionCookie hands the token to the browser
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}

// tokenFromRequest prefers the Authorization header over the cookie
func tokenFromRequest(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), true
	}
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie, false
	}
	return "", false
}
