package tesseract

import "strings"

// traineddata names per catalog language
var languageCodes = map[string]string{
	"en": "eng",
	"zh": "chi_sim",
	"ko": "kor",
}

// LanguageCode maps a catalog language to a Tesseract traineddata name.
// Unknown languages pass through unchanged.
func LanguageCode(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if code, ok := languageCodes[language]; ok {
		return code
	}
	if language == "" {
		return "eng"
	}
	return language
}
