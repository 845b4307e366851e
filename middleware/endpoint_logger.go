package middleware

import (
	"fmt"
	"time"

	"github.com/fgiusti90/psico-app/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records every handled request as an ENDPOINT_CALL audit
// event, attributed to the practitioner when the request was authenticated.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		req := c.Request
		status := c.Writer.Status()
		practitioner, _ := GetUserID(c)

		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventEndpointCall,
			UserID:    practitioner,
			EntityID:  c.Param("id"),
			IP:        c.ClientIP(),
			UserAgent: req.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", req.Method, req.URL.Path, status),
			Details: map[string]interface{}{
				"method":      req.Method,
				"route":       c.FullPath(),
				"path":        req.URL.Path,
				"query":       req.URL.RawQuery,
				"status":      status,
				"duration_ms": time.Since(started).Milliseconds(),
			},
		})
	}
}
