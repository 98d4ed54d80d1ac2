// Package session wraps the cookie session: the logged-in identity
// (user_id and username) and one-shot flash notices.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/blindhunter/blindhunter/database/model"
	"github.com/blindhunter/blindhunter/web/entity"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session cookie.
const CookieName = "blindhunter"

const (
	userIdKey   = "user_id"
	usernameKey = "username"
)

func init() {
	gob.Register(entity.Flash{})
}

// SetLoginUser stores the user's identity in the session and saves it.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(userIdKey, user.Id)
	s.Set(usernameKey, user.Username)
	return s.Save()
}

// SetMaxAge sets the cookie lifetime in seconds for the next save; 0 means
// a browser session.
func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetUserId returns the logged-in user's id and whether one is present.
func GetUserId(c *gin.Context) (int, bool) {
	id, ok := sessions.Default(c).Get(userIdKey).(int)
	return id, ok
}

// GetUsername returns the logged-in username, empty when logged out.
func GetUsername(c *gin.Context) string {
	username, _ := sessions.Default(c).Get(usernameKey).(string)
	return username
}

func IsLogin(c *gin.Context) bool {
	_, ok := GetUserId(c)
	return ok
}

// ClearSession drops every session value, including pending flashes.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// AddFlash queues a notice for the next rendered page.
func AddFlash(c *gin.Context, category string, message string) error {
	s := sessions.Default(c)
	s.AddFlash(entity.Flash{Category: category, Message: message})
	return s.Save()
}

// Flashes pops all queued notices.
func Flashes(c *gin.Context) []entity.Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	flashes := make([]entity.Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(entity.Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	_ = s.Save()
	return flashes
}
