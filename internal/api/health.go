package api

import (
	"context"  // Ping deadlines
	"net/http" // HTTP status codes
	"time"     // Ping timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// MeHandler returns the authenticated principal
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// HealthHandler reports whether MySQL and Redis answer
func HealthHandler(db Pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		healthy := true
		if err := db.PingContext(ctx); err != nil {
			logrus.WithField("error", err.Error()).Error("Database ping failed")
			status["database"] = "unavailable"
			healthy = false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithField("error", err.Error()).Error("Redis ping failed")
			status["redis"] = "unavailable"
			healthy = false
		}
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
