package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/rs/zerolog"
)

// RequestLogger 4xx 记为 warn，5xx 记为 error
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = util_log.Error()
		case status >= 400:
			event = util_log.Warn()
		default:
			event = util_log.Info()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("user_id", c.GetString(ContextUserID)).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}
