// middleware/language.go
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"flowai-dashboard/i18n"
)

// LanguageLocalsKey holds the language negotiated for the request.
const LanguageLocalsKey = "lang"

// LanguageMiddleware picks the response language: ?lang= wins, then Accept-Language,
// then the session's current language.
func LanguageMiddleware(translator *i18n.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := translator.Language()
		if q := c.Query("lang"); q != "" {
			if normalized, err := i18n.Normalize(q); err == nil {
				lang = normalized
			}
		} else if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
			lang = i18n.Negotiate(header, lang)
		}
		c.Locals(LanguageLocalsKey, lang)
		return c.Next()
	}
}

// Language returns the negotiated language, or "" outside LanguageMiddleware.
func Language(c *fiber.Ctx) string {
	lang, _ := c.Locals(LanguageLocalsKey).(string)
	return lang
}
