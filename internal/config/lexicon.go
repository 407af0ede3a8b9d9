package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

type TermPair struct {
	English string `yaml:"en"`
	Thai    string `yaml:"th"`
}

// Lexicon is the static vocabulary the retrieval and ingestion paths share.
// It is loaded once at startup and never mutated afterwards.
type Lexicon struct {
	Glossary           []TermPair `yaml:"glossary"`
	NoiseMarkers       []string   `yaml:"noise_markers"`
	ThaiContentMarkers []string   `yaml:"thai_content_markers"`
	SlideBoilerplate   []string   `yaml:"slide_boilerplate"`
}

// LoadLexicon parses the lexicon at path, or the embedded default when path is empty.
func LoadLexicon(path string) (*Lexicon, error) {
	data := defaultLexicon
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
		}
		data = b
	}
	return ParseLexicon(data)
}

func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}
	if err := lex.validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// DefaultLexicon never fails on a well-formed build.
func DefaultLexicon() *Lexicon {
	lex, err := ParseLexicon(defaultLexicon)
	if err != nil {
		panic(err)
	}
	return lex
}

func (l *Lexicon) validate() error {
	for i, p := range l.Glossary {
		if strings.TrimSpace(p.English) == "" || strings.TrimSpace(p.Thai) == "" {
			return fmt.Errorf("glossary entry %d: both en and th are required", i)
		}
	}
	for _, m := range l.NoiseMarkers {
		if strings.TrimSpace(m) == "" {
			return errors.New("empty noise marker")
		}
	}
	return nil
}
