package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/domain/commonModels"
)

func TestExpand_EnglishScenario(t *testing.T) {
	e := New([]config.TermPair{{English: "web security", Thai: "ความปลอดภัยเว็บไซต์"}})

	got := e.Expand("web security", commonModels.LangEnglish)

	assert.Equal(t, commonModels.ExpansionSet{
		"web security",
		"web security ความปลอดภัยเว็บไซต์",
		"ความปลอดภัยเว็บไซต์",
	}, got)
}

func TestExpand_DefaultGlossaryOrder(t *testing.T) {
	e := New(config.DefaultLexicon().Glossary)

	got := e.Expand("Which Security Controls are required?", commonModels.LangEnglish)

	require.Len(t, got, 3)
	assert.Equal(t, "Which Security Controls are required?", got[0])
	assert.Equal(t, "Which Security Controls are required? มาตรการความปลอดภัย มาตรการ", got[1])
	assert.Equal(t, "มาตรการความปลอดภัย มาตรการ", got[2])
}

func TestExpand_Thai(t *testing.T) {
	e := New(config.DefaultLexicon().Glossary)

	got := e.Expand("มาตรฐานความปลอดภัยเว็บไซต์ของไทย", commonModels.LangThai)

	require.Len(t, got, 2)
	assert.Equal(t, "มาตรฐานความปลอดภัยเว็บไซต์ของไทย", got[0])
	// "web security" and "website security" share a Thai term; the last English one wins
	assert.Equal(t, "มาตรฐานความปลอดภัยเว็บไซต์ของไทย website security security standard", got[1])
}

func TestExpand_ThaiReverseKeepsFirstPosition(t *testing.T) {
	e := New([]config.TermPair{
		{English: "monitoring", Thai: "การตรวจสอบ"},
		{English: "logging", Thai: "การบันทึก"},
		{English: "audit", Thai: "การตรวจสอบ"},
	})

	got := e.Expand("การบันทึกและการตรวจสอบ", commonModels.LangThai)

	assert.Equal(t, commonModels.ExpansionSet{
		"การบันทึกและการตรวจสอบ",
		"การบันทึกและการตรวจสอบ audit logging",
	}, got)
}

func TestExpand_NoMatch(t *testing.T) {
	e := New(config.DefaultLexicon().Glossary)

	tests := []struct {
		query string
		lang  commonModels.Language
	}{
		{"How does MITRE describe persistence?", commonModels.LangEnglish},
		{"สวัสดีครับ", commonModels.LangThai},
		{"", commonModels.LangEnglish},
	}
	for _, tt := range tests {
		assert.Equal(t, commonModels.ExpansionSet{tt.query}, e.Expand(tt.query, tt.lang))
	}
}

func TestExpand_OriginalFirstAndUnique(t *testing.T) {
	e := New(config.DefaultLexicon().Glossary)
	queries := []string{
		"encryption and authentication for government websites",
		"incident response",
		"การเข้ารหัส",
		"Broken Access control injection vulnerability",
	}

	for _, q := range queries {
		for _, lang := range []commonModels.Language{commonModels.LangEnglish, commonModels.LangThai} {
			got := e.Expand(q, lang)
			require.NotEmpty(t, got)
			assert.Equal(t, q, got[0])

			seen := map[string]bool{}
			for _, v := range got {
				assert.False(t, seen[v], "duplicate variant %q", v)
				seen[v] = true
			}
		}
	}
}

func TestExpand_SkipsVariantEqualToOriginal(t *testing.T) {
	e := New([]config.TermPair{{English: "ภาครัฐ", Thai: "ภาครัฐ"}})

	got := e.Expand("ภาครัฐ", commonModels.LangEnglish)

	assert.Equal(t, commonModels.ExpansionSet{"ภาครัฐ", "ภาครัฐ ภาครัฐ"}, got)
}
