// Package locale loads the embedded toml translations and resolves UI text
// for the language chosen by the "lang" cookie or Accept-Language header.
package locale

import (
	"io/fs"
	"strings"

	"github.com/blindhunter/blindhunter/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

var i18nBundle *i18n.Bundle

// InitLocalizer parses every translation file under "translation" in i18nFS.
func InitLocalizer(i18nFS fs.FS) error {
	bundle := i18n.NewBundle(language.MustParse("en-US"))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	return nil
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	var sep string = "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}

	return templateData
}

func localize(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		// Fallback to key if localizer not ready
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Errorf("Failed to localize message: %v", err)
		return key
	}
	return msg
}

// NewLocalizer returns a localizer preferring the given languages, or nil
// before InitLocalizer has run.
func NewLocalizer(langs ...string) *i18n.Localizer {
	if i18nBundle == nil {
		return nil
	}
	return i18n.NewLocalizer(i18nBundle, langs...)
}

// I18n translates key for lang (a tag or Accept-Language value).
// Params are "name==value" pairs for message templates.
func I18n(lang string, key string, params ...string) string {
	return localize(NewLocalizer(lang), key, params...)
}

// I18nContext translates key with the localizer LocalizerMiddleware attached to c.
func I18nContext(c *gin.Context, key string, params ...string) string {
	var localizer *i18n.Localizer
	if v, ok := c.Get(localizerKey); ok {
		localizer, _ = v.(*i18n.Localizer)
	}
	return localize(localizer, key, params...)
}

// GetLang returns the language preference of the request.
func GetLang(c *gin.Context) string {
	if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.GetHeader("Accept-Language")
}

// LocalizerMiddleware attaches a per-request localizer and the chosen language.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)
		c.Set("lang", lang)
		c.Set(localizerKey, NewLocalizer(lang))
		c.Next()
	}
}

func parseTranslationFiles(i18nFS fs.FS, i18nBundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			data, err := fs.ReadFile(i18nFS, path)
			if err != nil {
				return err
			}

			_, err = i18nBundle.ParseMessageFileBytes(data, path)
			return err
		})
}
