package detect

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed hints.yaml
var hintsYAML []byte

type hintConfig struct {
	Currency keywordList `yaml:"currency"`
	Date     keywordList `yaml:"date"`
	Phone    keywordList `yaml:"phone"`
	Roles    struct {
		Quantity []string `yaml:"quantity"`
		Price    []string `yaml:"price"`
		Subtotal []string `yaml:"subtotal"`
		Tax      []string `yaml:"tax"`
		Total    []string `yaml:"total"`
	} `yaml:"roles"`
}

type keywordList struct {
	Keywords []string `yaml:"keywords"`
}

var hints hintConfig

func init() {
	if err := yaml.Unmarshal(hintsYAML, &hints); err != nil {
		panic(fmt.Sprintf("detect: invalid embedded hints.yaml: %v", err))
	}
}

// Hints carries the header-derived booster flags for a column. Identical
// values classify differently depending on these: a bare number under a
// "harga" header is currency, not a plain number.
type Hints struct {
	Currency bool
	Date     bool
	Phone    bool
}

// HeaderHints inspects a column name and reports which value families its
// wording suggests.
func HeaderHints(header string) Hints {
	norm := normalizeHeader(header)
	return Hints{
		Currency: containsKeyword(norm, hints.Currency.Keywords),
		Date:     containsKeyword(norm, hints.Date.Keywords),
		Phone:    containsKeyword(norm, hints.Phone.Keywords),
	}
}

func normalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func containsKeyword(normalizedHeader string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalizedHeader, kw) {
			return true
		}
	}
	return false
}
