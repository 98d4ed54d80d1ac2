// Package middleware holds gin middleware shared by every blindhunter route.
package middleware

import (
	"strings"
	"time"

	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or assigns a new one, stores it
// in the context under "request_id" and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AuditMiddleware logs every data-changing request after it completes:
// action, resource, resulting status and the acting username.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if shouldSkipAudit(path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		action, resource := extractActionFromPath(c.Request.Method, path)
		if action == "" {
			return
		}
		username := session.GetUsername(c)
		if username == "" {
			username = "-"
		}
		logger.Infof("[%s] %s %s by %s from %s -> %d (%v)",
			c.GetString("request_id"), action, resource, username, c.ClientIP(),
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

// shouldSkipAudit checks if path should be skipped from audit
func shouldSkipAudit(path string) bool {
	return strings.HasPrefix(path, "/assets/") || path == "/favicon.ico"
}

// extractActionFromPath maps a route onto an action and resource. Read-only
// requests yield an empty action.
func extractActionFromPath(method, path string) (action, resource string) {
	trimmed := strings.TrimPrefix(path, "/")
	verb, rest, _ := strings.Cut(trimmed, "_")
	resource, _, _ = strings.Cut(rest, "/")
	if resource != "" {
		resource = strings.TrimPrefix(path, "/"+verb+"_")
	}

	switch {
	case verb == "delete" && resource != "":
		return "DELETE", resource
	case method != "POST":
		return "", ""
	case verb == "add" && resource != "":
		return "CREATE", resource
	case verb == "edit" && resource != "":
		return "UPDATE", resource
	case trimmed == "login", trimmed == "register":
		return strings.ToUpper(trimmed), "user"
	}
	return "", ""
}
