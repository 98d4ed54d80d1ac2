package controller

import (
	"errors"
	"net/http"
	"text/template"

	"github.com/blindhunter/blindhunter/logger"
	"github.com/blindhunter/blindhunter/web/entity"
	"github.com/blindhunter/blindhunter/web/service"
	"github.com/blindhunter/blindhunter/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login and registration request structure.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// IndexController handles the home page, registration, login and logout.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "home.html", "pages.home.title", nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "pages.register.title", nil)
}

// register creates the account and sends the user to the login page.
func (a *IndexController) register(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	safeUser := template.HTMLEscapeString(form.Username)
	_, err := a.userService.Register(form.Username, form.Password)
	if errors.Is(err, service.ErrUsernameTaken) {
		logger.Infof("registration refused, username \"%s\" exists, IP: \"%s\"", safeUser, getRemoteIp(c))
		flash(c, entity.FlashDanger, I18nWeb(c, "flash.usernameExists"))
		redirect(c, "/register")
		return
	} else if err != nil {
		fail(c, "register user failed:", err)
		return
	}

	logger.Infof("%s registered, IP: %s", safeUser, getRemoteIp(c))
	flash(c, entity.FlashSuccess, I18nWeb(c, "flash.registered"))
	redirect(c, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "pages.login.title", nil)
}

// login stores the user's identity in the session on valid credentials and
// re-renders the form with an error otherwise.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	safeUser := template.HTMLEscapeString(form.Username)
	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("wrong username or password for \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		html(c, "login.html", "pages.login.title", gin.H{
			"flashes": []entity.Flash{{Category: entity.FlashDanger, Message: I18nWeb(c, "flash.invalidLogin")}},
		})
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}
	session.SetMaxAge(c, sessionMaxAge*60)
	if err := session.SetLoginUser(c, user); err != nil {
		fail(c, "Unable to save session:", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	flash(c, entity.FlashSuccess, I18nWeb(c, "flash.loginSuccess"))
	redirect(c, "/companies")
}

// logout clears the session unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	if username := session.GetUsername(c); username != "" {
		logger.Infof("%s logged out successfully", template.HTMLEscapeString(username))
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	redirect(c, "/")
}
