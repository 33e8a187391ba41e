// Package i18n localizes aix's own user-facing messages.
//
// It wraps the gotext library; the translation catalogs for the tool itself
// are embedded into the binary so no runtime files are needed. Call Init
// once at startup, then T for plain messages and N for plural-sensitive
// ones.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the tool's own translation files, laid out as
// locales/{lang}/LC_MESSAGES/aix.po.
//
//go:embed all:locales
var locales embed.FS

const domain = "aix"

var (
	locale   *gotext.Locale
	language string
)

// Init loads the embedded catalog for lang. An empty lang auto-detects from
// the environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG, in GNU gettext
// order).
func Init(lang string) {
	if lang == "" {
		lang = envLanguage()
	}
	language = lang

	locale = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	locale.AddDomain(domain)
	locale.SetDomain(domain)
}

// Language returns the language selected by Init, or "" before Init.
func Language() string { return language }

// T translates msgid, formatting any args into it. Untranslated messages
// pass through unchanged, gettext style.
func T(msgid string, args ...any) string {
	if locale == nil {
		if len(args) > 0 {
			return fmt.Sprintf(msgid, args...)
		}
		return msgid
	}
	return locale.Get(msgid, args...)
}

// N translates a count-dependent message, choosing singular or plural by
// the target language's plural rules.
func N(singular, plural string, n int, args ...any) string {
	if locale == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return locale.GetN(singular, plural, n, args...)
}

// envLanguage resolves the preferred language the way GNU gettext does.
func envLanguage() string {
	for _, key := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		if key == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		val, _, _ = strings.Cut(val, ".")
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
