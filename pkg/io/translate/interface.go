package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable      = errors.New("translation service unavailable")
	ErrEmptyTranslation = errors.New("translation came back empty")
)

// Translator converts text between languages. Languages are ISO 639-1 codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"hi": "Hindi",
	"ml": "Malayalam",
	"ta": "Tamil",
	"te": "Telugu",
}

// LanguageName falls back to the raw code for languages outside the known set.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// Instruction is the system prompt shared by the LLM backed translators.
func Instruction(source, target string) string {
	from := "the detected language"
	if source != "" {
		from = LanguageName(source)
	}
	return fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. "+
			"Reply with the translation only, without quotes, notes or explanations.",
		from, LanguageName(target))
}

// Clean strips wrapping whitespace and quotes models sometimes add.
func Clean(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"“”")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyTranslation
	}
	return s, nil
}
