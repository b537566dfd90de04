package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	"github.com/spf13/viper"
)

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

// DetectPostLanguage guesses the language of post content. The detector
// covers the alphabets hashtags accept; building it is expensive, so it
// is created once and only when detection is enabled.
func DetectPostLanguage(content string) string {
	if !viper.GetBool("content.detect_language") {
		return ""
	}
	if len(strings.TrimSpace(content)) == 0 {
		return ""
	}

	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Russian).
			Build()
	})

	if language, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}

	return ""
}
