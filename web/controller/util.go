package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/blindhunter/blindhunter/config"
	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/web/entity"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a page with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders a page template, adding the shared layout data and
// popping pending flashes. Flashes already in data["flashes"] are shown after
// the queued ones.
func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	flashes := session.Flashes(c)
	if extra, ok := data["flashes"].([]entity.Flash); ok {
		flashes = append(flashes, extra...)
	}
	data["flashes"] = flashes
	data["title"] = title
	data["lang"] = c.GetString("lang")
	data["username"] = session.GetUsername(c)
	data["request_uri"] = c.Request.RequestURI
	c.HTML(status, name, getContext(data))
}

// getContext adds version and other context data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver":  config.GetVersion(),
		"app_name": config.GetName(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// NotFound renders the custom 404 page.
func NotFound(c *gin.Context) {
	htmlStatus(c, http.StatusNotFound, "404.html", "pages.notFound.title", nil)
	c.Abort()
}

// paramId parses the :id path parameter. Non-numeric ids get the 404 page,
// like any unmatched route.
func paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

// fail hands an unexpected error to gin, which answers 500.
func fail(c *gin.Context, msg string, err error) {
	logger.Warning(msg, err)
	_ = c.AbortWithError(http.StatusInternalServerError, err)
}
