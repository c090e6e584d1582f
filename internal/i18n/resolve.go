// Package i18n resolves localized record fields and filters content by
// locale visibility. Content rows store translations either as a single
// unsuffixed column or as per-locale columns (field_he, field_en).
package i18n

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// defaultLocale is the platform default. It is read on every request and
// rewritten by the config reload watcher, so access goes through atomics.
var defaultLocale atomic.Value

func init() {
	defaultLocale.Store("he")
}

// DefaultLocale returns the platform default locale. Records with no
// translation for the requested locale fall back to it.
func DefaultLocale() string {
	return defaultLocale.Load().(string)
}

// SetDefaultLocale overrides the platform default. Empty values are ignored
// so a partial config reload cannot blank the fallback chain.
func SetDefaultLocale(locale string) {
	if locale != "" {
		defaultLocale.Store(locale)
	}
}

// BaseLocale reduces a BCP-47 tag to its language part ("en-US" -> "en").
func BaseLocale(locale string) string {
	if i := strings.IndexByte(locale, '-'); i >= 0 {
		return locale[:i]
	}
	return locale
}

// Resolve returns the best-matching localized value of field from a record's
// fields. The fallback order is a contract, not an implementation detail:
//
//  1. the unsuffixed field, whenever present (even if another locale variant
//     would match the requested locale better);
//  2. field_<locale>;
//  3. field_he (the platform default);
//  4. the empty string.
func Resolve(fields map[string]interface{}, field, locale string) string {
	if len(fields) == 0 {
		return ""
	}

	if v, ok := fields[field]; ok && v != nil {
		return asString(v)
	}

	base := BaseLocale(locale)
	if v := asString(fields[field+"_"+base]); v != "" {
		return v
	}
	if v := asString(fields[field+"_"+DefaultLocale()]); v != "" {
		return v
	}
	return ""
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Audience is implemented by content rows that are shown only to some
// locales: either via a single language tag or via a visibility list.
type Audience interface {
	AudienceLanguage() string
	AudienceVisibility() []string
}

// Visible reports whether an item should be shown for the given locale.
// A language tag matches on the base language; a visibility list matches on
// membership of either the full or the base tag; items carrying neither are
// visible to everyone.
func Visible(a Audience, locale string) bool {
	base := BaseLocale(locale)

	if lang := a.AudienceLanguage(); lang != "" {
		return lang == base || lang == locale
	}
	if vis := a.AudienceVisibility(); vis != nil {
		for _, tag := range vis {
			if tag == base || tag == locale {
				return true
			}
		}
		return false
	}
	return true
}

// FilterVisible keeps only the items visible for the given locale.
func FilterVisible[T Audience](items []T, locale string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Visible(item, locale) {
			out = append(out, item)
		}
	}
	return out
}
