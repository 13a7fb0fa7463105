// Package i18n is the dashboard's translation provider: static zh/en tables,
// {param} substitution and a current-language switch with change hooks.
package i18n

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const DefaultLanguage = "zh"

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Params are the named values substituted into {placeholders}.
type Params map[string]any

var (
	placeholder = regexp.MustCompile(`\{(\w+)\}`)
	supported   = []language.Tag{language.Chinese, language.English}
	matcher     = language.NewMatcher(supported)
)

// Translate looks key up for lang and substitutes params.
// Unknown keys come back unchanged; placeholders without a param stay verbatim.
func Translate(lang, key string, params Params) string {
	text, ok := tables[lang][key]
	if !ok {
		text = key
	}
	if len(params) == 0 {
		return text
	}
	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		if v, ok := params[name]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return match
	})
}

// IsKey reports whether msg should be translated rather than shown verbatim.
func IsKey(msg string) bool {
	if strings.HasPrefix(msg, "notification.") || strings.HasPrefix(msg, "log.") {
		return true
	}
	_, ok := tables[DefaultLanguage][msg]
	return ok
}

// Normalize maps a language code ("en-US", "zh_CN", "ZH") onto a supported table.
func Normalize(code string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	base, _ := tag.Base()
	if _, ok := tables[base.String()]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return base.String(), nil
}

// Negotiate picks a supported language from an Accept-Language header.
func Negotiate(acceptLanguage, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Table returns a copy of the strings for lang.
func Table(lang string) map[string]string {
	return maps.Clone(tables[lang])
}

// Translator holds the current language for one session.
type Translator struct {
	mu    sync.RWMutex
	lang  string
	hooks []func(lang string)
}

func NewTranslator(lang string) *Translator {
	normalized, err := Normalize(lang)
	if err != nil {
		log.Printf("⚠️  [I18N] %v, falling back to %s", err, DefaultLanguage)
		normalized = DefaultLanguage
	}
	return &Translator{lang: normalized}
}

func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the current language and fires change hooks when it actually changed.
func (t *Translator) SetLanguage(code string) error {
	lang, err := Normalize(code)
	if err != nil {
		return err
	}

	t.mu.Lock()
	changed := t.lang != lang
	t.lang = lang
	hooks := append([]func(string){}, t.hooks...)
	t.mu.Unlock()

	if changed {
		for _, hook := range hooks {
			hook(lang)
		}
	}
	return nil
}

// OnChange registers a hook run after every language switch.
func (t *Translator) OnChange(hook func(lang string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, hook)
}

func (t *Translator) T(key string, params Params) string {
	return Translate(t.Language(), key, params)
}

// Message translates msg when it is a key and returns free text untouched.
func (t *Translator) Message(msg string, params Params) string {
	if !IsKey(msg) {
		return msg
	}
	return t.T(msg, params)
}
