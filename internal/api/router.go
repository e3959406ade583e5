package api

import (
	"time" // Report time zone

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"waste_tracker/internal/middleware" // Session gate and request logging
	"waste_tracker/internal/session"    // Session tokens
)

// Deps is everything the router wires into handlers
type Deps struct {
	Users          UserService      // Registration and login
	Entries        EntryService     // Entry CRUD
	Weekly         WeeklyService    // Weekly aggregation
	Sessions       *session.Manager // Session issue, check and revoke
	DB             Pinger           // Health check target
	Redis          *redis.Client    // Health check target
	Location       *time.Location   // Time zone used in PDF reports
	SecureCookies  bool             // Mark the session cookie Secure
	TrustedProxies []string         // Proxies allowed to set client IP headers
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()                                    // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger()) // Panic recovery and logrus access log
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}

	// Auth routes
	r.GET("/register", RegisterFormHandler())                                  // Registration form description
	r.POST("/register", RegisterHandler(d.Users, d.Sessions, d.SecureCookies)) // Registration endpoint
	r.GET("/login", LoginFormHandler())                                        // Login form description
	r.POST("/login", LoginHandler(d.Users, d.Sessions, d.SecureCookies))       // Login endpoint
	r.GET("/healthz", HealthHandler(d.DB, d.Redis))                            // Liveness of MySQL and Redis

	// Session protected routes
	gate := middleware.SessionAuthMiddleware(d.Sessions)
	r.GET("/logout", gate, LogoutHandler(d.Sessions)) // Logout endpoint

	apiGroup := r.Group("/api")
	apiGroup.Use(gate)
	apiGroup.GET("/me", MeHandler())                                          // Current principal
	apiGroup.GET("/waste", ListWasteHandler(d.Entries))                       // List entries
	apiGroup.POST("/waste", AddWasteHandler(d.Entries))                       // Add entry
	apiGroup.GET("/waste/today", TodayWasteHandler(d.Entries))                // Today's entries
	apiGroup.GET("/waste/weekly", WeeklyWasteHandler(d.Weekly))               // Weekly report
	apiGroup.GET("/waste/weekly/pdf", WeeklyPDFHandler(d.Weekly, d.Location)) // Weekly report as PDF
	apiGroup.DELETE("/waste/:id", DeleteWasteHandler(d.Entries))              // Delete entry

	return r, nil
}
