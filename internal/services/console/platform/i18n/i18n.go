// Package i18n resolves the request language and its message printer.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/myhome/console/internal/platform/i18n"
	_ "github.com/myhome/console/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter that switches language.
	LangParam = "lang"
	// LangCookie remembers the chosen language.
	LangCookie = "console_lang"

	langCookieMaxAge = 365 * 24 * 60 * 60
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ResolveTag picks the request language from the lang query parameter, then
// the language cookie, then Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return platformi18n.DefaultTag()
	}
	if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	if cookie, err := r.Cookie(LangCookie); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag
		}
	}
	if header := strings.TrimSpace(r.Header.Get("Accept-Language")); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil {
			return platformi18n.MatchTags(tags)
		}
	}
	return platformi18n.DefaultTag()
}

// ResolveLocalizer returns a printer and language code for r. A valid lang
// query parameter is persisted in the language cookie.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (Localizer, string) {
	tag := ResolveTag(r)
	if r != nil && w != nil {
		if _, ok := platformi18n.ParseTag(r.URL.Query().Get(LangParam)); ok {
			SetLanguageCookie(w, tag)
		}
	}
	return Printer(tag), LanguageCode(tag)
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// LanguageCode returns the two-letter base of tag.
func LanguageCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// SetLanguageCookie stores tag as the preferred language.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    LanguageCode(tag),
		Path:     "/",
		MaxAge:   langCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// T formats key with loc, returning key when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key, args...)
}
