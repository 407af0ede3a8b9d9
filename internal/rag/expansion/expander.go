// Package expansion rewrites a query into bilingual variants using a fixed
// glossary of security terms, so English questions can reach Thai passages and
// the other way around.
package expansion

import (
	"strings"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

type term struct {
	from string
	to   string
}

// Expander is safe for concurrent use; its tables are never written after New.
type Expander struct {
	enToTh []term
	thToEn []term
}

// New builds both directions of the glossary. When several English terms map to
// the same Thai term, the reverse entry keeps the position of the first one and
// the English text of the last one.
func New(pairs []config.TermPair) *Expander {
	e := &Expander{
		enToTh: make([]term, 0, len(pairs)),
	}
	index := make(map[string]int, len(pairs))

	for _, p := range pairs {
		e.enToTh = append(e.enToTh, term{from: strings.ToLower(p.English), to: p.Thai})

		if i, ok := index[p.Thai]; ok {
			e.thToEn[i].to = p.English
			continue
		}
		index[p.Thai] = len(e.thToEn)
		e.thToEn = append(e.thToEn, term{from: p.Thai, to: p.English})
	}
	return e
}

// Expand returns the original query followed by its translated variants.
func (e *Expander) Expand(query string, lang commonModels.Language) commonModels.ExpansionSet {
	set := commonModels.ExpansionSet{query}

	switch lang {
	case commonModels.LangEnglish:
		matched := matchTerms(e.enToTh, strings.ToLower(query))
		if len(matched) == 0 {
			return set
		}
		set = appendVariant(set, query+" "+strings.Join(matched, " "))
		set = appendVariant(set, strings.Join(matched, " "))

	case commonModels.LangThai:
		matched := matchTerms(e.thToEn, query)
		if len(matched) == 0 {
			return set
		}
		set = appendVariant(set, query+" "+strings.Join(matched, " "))
	}
	return set
}

func matchTerms(table []term, haystack string) []string {
	var matched []string
	for _, t := range table {
		if strings.Contains(haystack, t.from) {
			matched = append(matched, t.to)
		}
	}
	return matched
}

// appendVariant skips variants that would issue the same search twice.
func appendVariant(set commonModels.ExpansionSet, variant string) commonModels.ExpansionSet {
	trimmed := strings.TrimSpace(variant)
	for _, existing := range set {
		if strings.TrimSpace(existing) == trimmed {
			return set
		}
	}
	return append(set, variant)
}
