// Package controller provides the HTTP handlers of blindhunter: the home and
// account pages, company management and review management.
package controller

import (
	"net/http"

	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/web/entity"
	"github.com/blindhunter/blindhunter/web/locale"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers, including authentication checks.
type BaseController struct{}

// checkLogin sends visitors without a session back to the home page with a warning.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		flash(c, entity.FlashWarning, I18nWeb(c, "flash.loginRequired"))
		redirect(c, "/")
		c.Abort()
	} else {
		c.Next()
	}
}

// I18nWeb retrieves an internationalized message for the request's language.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18nContext(c, name, params...)
}

// flash queues a notice for the next page; failures only cost the notice.
func flash(c *gin.Context, category string, message string) {
	if err := session.AddFlash(c, category, message); err != nil {
		logger.Warning("Unable to save flash message:", err)
	}
}

// redirect answers a form submission with 302 so the browser follows with GET.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
