package domain

import (
	"errors"
	"unicode"
)

// Language tags the requested answer language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage maps a caller-supplied tag to a supported Language.
// An empty tag defaults to English.
func ParseLanguage(raw string) (Language, error) {
	switch Language(raw) {
	case "":
		return LanguageEnglish, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageArabic:
		return LanguageArabic, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse language", errors.New("unsupported language tag: "+raw))
	}
}

// ContainsArabicScript reports whether text holds at least one code point from
// the Arabic script. It is a best-effort heuristic for answer validation, not
// a language identifier: a single Arabic word inside an English answer passes.
func ContainsArabicScript(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}
