package delivery

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/metrics"
)

// SessionCookie carries the browsing session id. The cart and the
// committed filter criteria hang off this id.
const SessionCookie = "storefront_session"

const contextSessionKey = "session_id"

// SessionMiddleware assigns a session id to first-time visitors and
// makes it available to handlers via sessionID.
func SessionMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(SessionCookie, id, int((24 * time.Hour).Seconds()), "/", "", false, true)
			logger.Debugf("Started new browsing session %s", id)
		}
		c.Set(contextSessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(contextSessionKey)
}

// RequestLogger logs one line per completed request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"ip":       c.ClientIP(),
			"duration": time.Since(start).String(),
		}).Info("Request completed")
	}
}

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
