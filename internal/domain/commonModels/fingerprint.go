package commonModels

import "github.com/akolanti/CyberRAG/internal/config"

type Fingerprint string

// FingerprintOf takes the first FingerprintLength characters of the raw text,
// unnormalized. Characters are runes so Thai text is never cut mid-codepoint.
func FingerprintOf(text string) Fingerprint {
	n := 0
	for i := range text {
		if n == config.FingerprintLength {
			return Fingerprint(text[:i])
		}
		n++
	}
	return Fingerprint(text)
}

func (c Chunk) Fingerprint() Fingerprint {
	return FingerprintOf(c.Chunk)
}
