package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"waste_tracker/internal/domain"     // Domain models
	"waste_tracker/internal/middleware" // Session cookie helpers
	"waste_tracker/internal/session"    // Session tokens
)

// RegisterRequest is accepted as a form post or as JSON
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`                 // Desired username
	Password        string `form:"password" json:"password"`                 // Plain password
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"` // Optional confirmation
}

// LoginRequest is accepted as a form post or as JSON
type LoginRequest struct {
	Username string `form:"username" json:"username"` // Username
	Password string `form:"password" json:"password"` // Plain password
}

// AuthResponse is returned after a session is established
type AuthResponse struct {
	Token    string `json:"token"`    // Session token, also set as a cookie
	Username string `json:"username"` // Authenticated username
}

// RegisterFormHandler describes the registration fields
func RegisterFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "POST username, password and confirm_password to /register"})
	}
}

// LoginFormHandler describes the login fields
func LoginFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "POST username and password to /login"})
	}
}

// RegisterHandler creates a user and logs them in
func RegisterHandler(users UserService, sessions *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind form or JSON body
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
		if err != nil {
			writeError(c, err)
			return
		}
		startSession(c, sessions, user, secureCookie, http.StatusCreated)
	}
}

// LoginHandler checks credentials and starts a session
func LoginHandler(users UserService, sessions *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form or JSON body
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("User logged in")
		startSession(c, sessions, user, secureCookie, http.StatusOK)
	}
}

// LogoutHandler revokes the current session and sends the browser to the login page
func LogoutHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := sessions.Revoke(c.Request.Context(), claims); err != nil {
			writeError(c, err)
			return
		}
		logrus.WithField("user_id", claims.UserID).Info("User logged out")
		middleware.ClearSessionCookie(c)
		c.Redirect(http.StatusFound, middleware.LoginPath)
	}
}

func startSession(c *gin.Context, sessions *session.Manager, user *domain.User, secureCookie bool, status int) {
	token, err := sessions.Issue(user)
	if err != nil {
		writeError(c, err)
		return
	}
	middleware.SetSessionCookie(c, token, int(sessions.TTL().Seconds()), secureCookie)
	c.JSON(status, AuthResponse{Token: token, Username: user.Username})
}
