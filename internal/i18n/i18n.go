// Package i18n provides the translation lookup used across the menu:
// products, ingredients, and extras carry per-language text maps and the
// rest of the system resolves them through Translate.
package i18n

import "strings"

// Supported language codes.
const (
	LangES = "es"
	LangEN = "en"
)

// Field names commonly present in translation maps.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// Translations maps a language code to a field → localized value map.
//
//	{"es": {"name": "Pizza Margarita"}, "en": {"name": "Margherita Pizza"}}
type Translations map[string]map[string]string

// Normalize returns a supported language code, defaulting to Spanish.
func Normalize(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case LangEN:
		return LangEN
	default:
		return LangES
	}
}

// Translate resolves a field from a translation map in the requested
// language, falling back to Spanish, then English, then the first language
// that carries the field. Returns "" when nothing matches.
func Translate(tr Translations, lang, field string) string {
	if len(tr) == 0 {
		return ""
	}

	for _, candidate := range []string{Normalize(lang), LangES, LangEN} {
		if fields, ok := tr[candidate]; ok {
			if v := fields[field]; v != "" {
				return v
			}
		}
	}

	for _, fields := range tr {
		if v := fields[field]; v != "" {
			return v
		}
	}
	return ""
}

// locationNames holds the display names for the enumerated delivery
// locations. The keys are the wire values accepted by the order backend.
var locationNames = map[string]map[string]string{
	LangES: {
		"ardales":    "Ardales",
		"carratraca": "Carratraca",
	},
	LangEN: {
		"ardales":    "Ardales",
		"carratraca": "Carratraca",
	},
}

// LocationName returns the localized display name for a delivery location
// key, or the key itself when unknown.
func LocationName(lang, key string) string {
	if names, ok := locationNames[Normalize(lang)]; ok {
		if name, ok := names[key]; ok {
			return name
		}
	}
	return key
}
