package domain

import (
	"fmt"
	"strings"
)

// Language is an answer language offered by the question answering surface.
type Language string

// Supported languages, keyed by ISO 639-1 code.
const (
	LangEnglish   Language = "en"
	LangHindi     Language = "hi"
	LangBengali   Language = "bn"
	LangMarathi   Language = "mr"
	LangGujarati  Language = "gu"
	LangTamil     Language = "ta"
	LangTelugu    Language = "te"
	LangKannada   Language = "kn"
	LangMalayalam Language = "ml"
	LangPunjabi   Language = "pa"
	LangOdia      Language = "or"
	LangUrdu      Language = "ur"
)

var languageNames = map[Language]string{
	LangEnglish:   "English",
	LangHindi:     "Hindi",
	LangBengali:   "Bengali",
	LangMarathi:   "Marathi",
	LangGujarati:  "Gujarati",
	LangTamil:     "Tamil",
	LangTelugu:    "Telugu",
	LangKannada:   "Kannada",
	LangMalayalam: "Malayalam",
	LangPunjabi:   "Punjabi",
	LangOdia:      "Odia",
	LangUrdu:      "Urdu",
}

// Languages returns every supported language in display order.
func Languages() []Language {
	return []Language{
		LangEnglish, LangHindi, LangBengali, LangMarathi, LangGujarati, LangTamil,
		LangTelugu, LangKannada, LangMalayalam, LangPunjabi, LangOdia, LangUrdu,
	}
}

// ParseLanguage accepts a code ("ml") or a name ("Malayalam"), case-insensitively.
// An empty string yields English.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LangEnglish, nil
	}
	for code, name := range languageNames {
		if strings.EqualFold(s, string(code)) || strings.EqualFold(s, name) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, s)
}

// Name returns the English name of the language.
func (l Language) Name() string {
	if n, ok := languageNames[l]; ok {
		return n
	}
	return string(l)
}
