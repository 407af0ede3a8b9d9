// Package language tells Thai queries apart from English ones.
package language

import (
	"unicode"

	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

const thaiRatioThreshold = 0.3

func isThai(r rune) bool {
	return r >= 0x0E00 && r <= 0x0E7F
}

// Detect returns LangThai when more than 30% of the alphanumeric characters are
// in the Thai block. Thai vowel and tone marks are counted as Thai even though
// they are not alphanumeric themselves.
func Detect(text string) commonModels.Language {
	thai, alnum := 0, 0
	for _, r := range text {
		if isThai(r) {
			thai++
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			alnum++
		}
	}
	if alnum == 0 {
		return commonModels.LangEnglish
	}
	if float64(thai)/float64(alnum) > thaiRatioThreshold {
		return commonModels.LangThai
	}
	return commonModels.LangEnglish
}
