// Package detect classifies raw cell values and whole columns into semantic
// types, and resolves which columns play the qty/price/subtotal/tax/total
// roles in transactional tables.
package detect

import (
	"math"
	"regexp"
	"strings"

	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/locale"
	"github.com/rapihdata/rapih/pkg/validator"
)

var (
	allDigitsPattern = regexp.MustCompile(`^\d+$`)
	numericPattern   = regexp.MustCompile(`^[+-]?[0-9.,\s]+$`)
	urlPattern       = regexp.MustCompile(`^https?://\S+$`)
	datetimePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}`)
	timePattern      = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

	dateShapePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$`),
		regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`),
		regexp.MustCompile(`^\d{1,2}\s+\p{L}+\s+\d{4}$`),
	}

	booleanWords = map[string]struct{}{
		"true": {}, "false": {}, "yes": {}, "no": {},
		"ya": {}, "tidak": {}, "1": {}, "0": {},
		"aktif": {}, "nonaktif": {},
	}
)

// valueRule pairs a semantic type with its predicate. Rules are evaluated in
// slice order and the first match wins; the order encodes
// specificity-over-generality and is part of the contract.
type valueRule struct {
	typ   domain.ColumnType
	match func(value string, hints Hints) bool
}

var valueRules = []valueRule{
	{domain.TypeNIK, func(v string, _ Hints) bool {
		if !allDigitsPattern.MatchString(v) || len(v) != 16 {
			return false
		}
		_, ok := validator.ProvinceName(v[:2])
		return ok
	}},
	{domain.TypeNPWP, func(v string, _ Hints) bool {
		digits := strings.Map(keepDigit, v)
		if len(digits) == 15 {
			return true
		}
		// 16-digit NPWPs are only recognizable when punctuated, otherwise
		// they are indistinguishable from a mistyped NIK.
		return len(digits) == 16 && digits != v
	}},
	{domain.TypePhone, func(v string, hints Hints) bool {
		if validator.ValidatePhoneID(v).Valid {
			return true
		}
		return hints.Phone && allDigitsPattern.MatchString(strings.Map(keepDigit, v))
	}},
	{domain.TypeCurrency, func(v string, hints Hints) bool {
		upper := strings.ToUpper(v)
		if strings.HasPrefix(upper, "RP") || strings.HasPrefix(upper, "IDR") {
			_, ok := locale.ParseNumber(v)
			return ok
		}
		if hints.Currency && numericPattern.MatchString(v) {
			_, ok := locale.ParseNumber(v)
			return ok
		}
		return false
	}},
	{domain.TypeCurrency, func(v string, _ Hints) bool {
		upper := strings.ToUpper(v)
		if !strings.HasPrefix(upper, "$") && !strings.HasPrefix(upper, "USD") {
			return false
		}
		_, ok := locale.ParseNumber(v)
		return ok
	}},
	{domain.TypeEmail, func(v string, _ Hints) bool {
		return validator.ValidateEmail(v).Valid
	}},
	{domain.TypeURL, func(v string, _ Hints) bool {
		return urlPattern.MatchString(v)
	}},
	{domain.TypePercentage, func(v string, _ Hints) bool {
		if !strings.HasSuffix(v, "%") {
			return false
		}
		_, ok := locale.ParseNumber(strings.TrimSuffix(v, "%"))
		return ok
	}},
	{domain.TypeDate, func(v string, hints Hints) bool {
		for _, p := range dateShapePatterns {
			if p.MatchString(v) {
				_, ok := locale.ParseDate(v)
				return ok
			}
		}
		if hints.Date {
			_, ok := locale.ParseDate(v)
			return ok
		}
		return false
	}},
	{domain.TypeDateTime, func(v string, _ Hints) bool {
		if !datetimePattern.MatchString(v) {
			return false
		}
		_, ok := locale.ParseDateTime(v)
		return ok
	}},
	{domain.TypeTime, func(v string, _ Hints) bool {
		return timePattern.MatchString(v)
	}},
	{domain.TypeBoolean, func(v string, _ Hints) bool {
		_, ok := booleanWords[strings.ToLower(v)]
		return ok
	}},
	{domain.TypeInteger, func(v string, _ Hints) bool {
		if !numericPattern.MatchString(v) {
			return false
		}
		f, ok := locale.ParseNumber(v)
		return ok && locale.IsInteger(f)
	}},
	{domain.TypeFloat, func(v string, _ Hints) bool {
		if !numericPattern.MatchString(v) {
			return false
		}
		_, ok := locale.ParseNumber(v)
		return ok
	}},
}

func keepDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}

// ValueType classifies a single raw value under the given header hints.
// Empty input is TypeEmpty; anything no rule claims is TypeString.
func ValueType(value string, hints Hints) domain.ColumnType {
	v := strings.TrimSpace(value)
	if v == "" {
		return domain.TypeEmpty
	}
	for _, rule := range valueRules {
		if rule.match(v, hints) {
			return rule.typ
		}
	}
	return domain.TypeString
}

// mixedMaxDistinct and mixedMinConfidence gate the MIXED demotion: a column
// is only mixed when more than two types were observed AND no type clearly
// dominates. One stray value never flips a column to mixed.
const (
	mixedMaxDistinct    = 2
	mixedMinConfidence  = 70.0
	maxSamplesPerColumn = 5
)

// AnalyzeColumn tallies per-value classifications into the column's dominant
// type, confidence, fill rate, uniqueness and samples.
func AnalyzeColumn(name string, values []domain.Value) domain.ColumnAnalysis {
	hints := HeaderHints(name)

	counts := make(map[domain.ColumnType]int)
	unique := make(map[string]struct{})
	samples := make([]string, 0, maxSamplesPerColumn)
	nonEmpty := 0

	for _, value := range values {
		text := strings.TrimSpace(value.Text())
		if value.IsEmpty() || text == "" {
			continue
		}
		nonEmpty++
		counts[ValueType(text, hints)]++
		unique[text] = struct{}{}
		if len(samples) < maxSamplesPerColumn {
			samples = append(samples, text)
		}
	}

	analysis := domain.ColumnAnalysis{
		Name:        name,
		TypeCounts:  counts,
		UniqueCount: len(unique),
		Samples:     samples,
	}
	if len(values) > 0 {
		analysis.FillRate = round2(float64(nonEmpty) / float64(len(values)) * 100)
	}

	if nonEmpty == 0 {
		analysis.Type = domain.TypeEmpty
		analysis.Confidence = 100
		return analysis
	}

	dominant := domain.TypeUnknown
	best := 0
	for typ, count := range counts {
		if count > best || (count == best && typ < dominant) {
			dominant = typ
			best = count
		}
	}

	confidence := round2(float64(best) / float64(nonEmpty) * 100)
	if len(counts) > mixedMaxDistinct && confidence < mixedMinConfidence {
		dominant = domain.TypeMixed
	}

	analysis.Type = dominant
	analysis.Confidence = confidence
	analysis.IsNumeric = dominant.IsNumeric()
	analysis.IsDate = dominant.IsDate()
	analysis.IsIdentifier = dominant.IsIdentifier()
	return analysis
}

// Table classifies every column of the table, in header order.
func Table(table domain.Table) []domain.ColumnAnalysis {
	out := make([]domain.ColumnAnalysis, 0, len(table.Headers))
	for _, header := range table.Headers {
		out = append(out, AnalyzeColumn(header, table.Column(header)))
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
