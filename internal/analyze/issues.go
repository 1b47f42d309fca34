package analyze

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/rapihdata/rapih/internal/detect"
	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/locale"
	"github.com/rapihdata/rapih/pkg/validator"
)

// typoUniqueCap skips typo scanning for very high-cardinality columns; the
// pairwise comparison is quadratic in the number of distinct values.
const typoUniqueCap = 500

var interiorSpaces = regexp.MustCompile(`\S( {2,})\S`)

func rowRef(i int) *int {
	n := i + 1 // 1-based positions in the original table
	return &n
}

func detectDuplicates(table domain.Table) []domain.Issue {
	var issues []domain.Issue
	seen := make(map[string]int, len(table.Rows))

	for i, row := range table.Rows {
		if row.IsBlank(table.Headers) {
			continue
		}
		sig := row.Signature(table.Headers)
		if first, dup := seen[sig]; dup {
			issues = append(issues, domain.Issue{
				Type:        domain.IssueDuplicate,
				Severity:    domain.SeverityWarning,
				Row:         rowRef(i),
				Message:     fmt.Sprintf("row %d is a duplicate of row %d", i+1, first+1),
				AutoFixable: true,
			})
			continue
		}
		seen[sig] = i
	}
	return issues
}

func detectEmptyRows(table domain.Table) []domain.Issue {
	var issues []domain.Issue
	for i, row := range table.Rows {
		if row.IsBlank(table.Headers) {
			issues = append(issues, domain.Issue{
				Type:        domain.IssueEmptyRow,
				Severity:    domain.SeverityInfo,
				Row:         rowRef(i),
				Message:     fmt.Sprintf("row %d is completely empty", i+1),
				AutoFixable: true,
			})
		}
	}
	return issues
}

func detectFormatInconsistency(table domain.Table, columns []domain.ColumnAnalysis) []domain.Issue {
	var issues []domain.Issue
	for _, col := range columns {
		if col.Type != domain.TypeMixed {
			continue
		}

		hints := detect.HeaderHints(col.Name)
		samplesByType := make(map[domain.ColumnType][]string)
		for _, value := range table.Column(col.Name) {
			text := strings.TrimSpace(value.Text())
			if text == "" {
				continue
			}
			typ := detect.ValueType(text, hints)
			if len(samplesByType[typ]) < 3 {
				samplesByType[typ] = append(samplesByType[typ], text)
			}
		}

		types := make([]string, 0, len(samplesByType))
		for typ := range samplesByType {
			types = append(types, string(typ))
		}
		sort.Strings(types)

		parts := make([]string, 0, len(types))
		for _, typ := range types {
			parts = append(parts, fmt.Sprintf("%s (e.g. %s)", typ,
				strings.Join(samplesByType[domain.ColumnType(typ)], ", ")))
		}

		issues = append(issues, domain.Issue{
			Type:     domain.IssueFormatInconsistent,
			Severity: domain.SeverityWarning,
			Column:   col.Name,
			Message: fmt.Sprintf("column %q mixes %d value formats: %s",
				col.Name, len(types), strings.Join(parts, "; ")),
		})
	}
	return issues
}

// identifier columns get every non-empty value re-validated with the
// corresponding domain validator.
func detectInvalidValues(table domain.Table, columns []domain.ColumnAnalysis) []domain.Issue {
	var issues []domain.Issue
	for _, col := range columns {
		if !col.IsIdentifier {
			continue
		}
		for i, value := range table.Column(col.Name) {
			text := strings.TrimSpace(value.Text())
			if text == "" {
				continue
			}
			if issue, bad := validateIdentifier(col.Type, text); bad {
				issue.Row = rowRef(i)
				issue.Column = col.Name
				issue.Actual = text
				issues = append(issues, issue)
			}
		}
	}
	return issues
}

func validateIdentifier(typ domain.ColumnType, text string) (domain.Issue, bool) {
	switch typ {
	case domain.TypeNIK:
		if res := validator.ValidateNIK(text); !res.Valid {
			return domain.Issue{
				Type:     domain.IssueInvalidNIK,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("invalid NIK: %s", res.Error),
			}, true
		}
	case domain.TypeNPWP:
		if res := validator.ValidateNPWP(text); !res.Valid {
			return domain.Issue{
				Type:     domain.IssueInvalidNPWP,
				Severity: domain.SeverityError,
				Message:  fmt.Sprintf("invalid NPWP: %s", res.Error),
			}, true
		}
	case domain.TypeEmail:
		if res := validator.ValidateEmail(text); !res.Valid {
			return domain.Issue{
				Type:     domain.IssueInvalidEmail,
				Severity: domain.SeverityError,
				Message:  "invalid email address",
			}, true
		}
	case domain.TypePhone:
		if res := validator.ValidatePhoneID(text); !res.Valid {
			return domain.Issue{
				Type:        domain.IssueInvalidPhone,
				Severity:    domain.SeverityWarning,
				Message:     "phone number is not a recognized Indonesian mobile format",
				AutoFixable: true,
			}, true
		}
	}
	return domain.Issue{}, false
}

func detectWhitespace(table domain.Table) []domain.Issue {
	var issues []domain.Issue
	for i, row := range table.Rows {
		for _, col := range table.Headers {
			text := row.Get(col).Text()
			if text == "" {
				continue
			}
			trimmed := strings.TrimSpace(text)
			if trimmed != text {
				issues = append(issues, domain.Issue{
					Type:        domain.IssueWhitespace,
					Severity:    domain.SeverityInfo,
					Row:         rowRef(i),
					Column:      col,
					Message:     "value has leading or trailing whitespace",
					AutoFixable: true,
				})
			}
			if interiorSpaces.MatchString(trimmed) {
				issues = append(issues, domain.Issue{
					Type:        domain.IssueWhitespace,
					Severity:    domain.SeverityInfo,
					Row:         rowRef(i),
					Column:      col,
					Message:     "value contains consecutive interior spaces",
					AutoFixable: true,
				})
			}
		}
	}
	return issues
}

// minOutlierSamples is the least number of parseable numeric values a column
// needs before the IQR bounds are meaningful.
const minOutlierSamples = 10

func detectOutliers(table domain.Table, columns []domain.ColumnAnalysis, k float64) []domain.Issue {
	var issues []domain.Issue
	for _, col := range columns {
		if !col.IsNumeric {
			continue
		}

		type sample struct {
			row int
			val float64
		}
		var samples []sample
		for i, value := range table.Column(col.Name) {
			text := strings.TrimSpace(value.Text())
			if text == "" {
				continue
			}
			if f, ok := locale.ParseNumber(text); ok {
				samples = append(samples, sample{row: i, val: f})
			}
		}
		if len(samples) < minOutlierSamples {
			continue
		}

		sorted := make([]float64, len(samples))
		for i, s := range samples {
			sorted[i] = s.val
		}
		sort.Float64s(sorted)

		q1 := sorted[len(sorted)/4]
		q3 := sorted[len(sorted)*3/4]
		iqr := q3 - q1
		lower := q1 - k*iqr
		upper := q3 + k*iqr

		for _, s := range samples {
			var reason string
			switch {
			case s.val < lower:
				reason = "too small"
			case s.val > upper:
				reason = "too large"
			default:
				continue
			}
			issues = append(issues, domain.Issue{
				Type:     domain.IssueOutlier,
				Severity: domain.SeverityWarning,
				Row:      rowRef(s.row),
				Column:   col.Name,
				Message: fmt.Sprintf("value %s is an outlier (%s); expected range %s to %s",
					locale.FormatNumber(s.val), reason, locale.FormatNumber(lower), locale.FormatNumber(upper)),
				Actual: locale.FormatNumber(s.val),
			})
		}
	}
	return issues
}

// subtotalTolerance and the PPN tolerance mirror the cleaner's thresholds so
// detected errors are exactly the ones fixCalculations would repair.
const (
	subtotalTolerance = 1.0
	taxToleranceFloor = 100.0
	taxTolerancePct   = 0.01
)

func detectCalculationErrors(table domain.Table, taxRate float64) []domain.Issue {
	roles := detect.ResolveRoles(table.Headers)
	qtyCol, hasQty := roles[detect.RoleQuantity]
	priceCol, hasPrice := roles[detect.RolePrice]
	subtotalCol, hasSubtotal := roles[detect.RoleSubtotal]
	taxCol, hasTax := roles[detect.RoleTax]

	if !hasQty || !hasPrice {
		return nil
	}

	var issues []domain.Issue
	for i, row := range table.Rows {
		qty, okQty := locale.ParseNumber(row.Get(qtyCol).Text())
		price, okPrice := locale.ParseNumber(row.Get(priceCol).Text())
		if !okQty || !okPrice {
			continue
		}
		expectedSubtotal := qty * price

		if hasSubtotal {
			if actual, ok := locale.ParseNumber(row.Get(subtotalCol).Text()); ok {
				if diff := expectedSubtotal - actual; diff > subtotalTolerance || diff < -subtotalTolerance {
					issues = append(issues, domain.Issue{
						Type:     domain.IssueCalculationError,
						Severity: domain.SeverityError,
						Row:      rowRef(i),
						Column:   subtotalCol,
						Message: fmt.Sprintf("subtotal should be %s (= %s × %s), found %s",
							locale.FormatNumber(expectedSubtotal), locale.FormatNumber(qty),
							locale.FormatNumber(price), locale.FormatNumber(actual)),
						AutoFixable: true,
						Expected:    locale.FormatNumber(expectedSubtotal),
						Actual:      locale.FormatNumber(actual),
					})
				}
			}
		}

		if hasTax {
			if actualTax, ok := locale.ParseNumber(row.Get(taxCol).Text()); ok {
				expectedTax := expectedSubtotal * taxRate
				tolerance := taxTolerancePct * expectedTax
				if tolerance < taxToleranceFloor {
					tolerance = taxToleranceFloor
				}
				if diff := expectedTax - actualTax; diff > tolerance || diff < -tolerance {
					issues = append(issues, domain.Issue{
						Type:     domain.IssuePPNError,
						Severity: domain.SeverityError,
						Row:      rowRef(i),
						Column:   taxCol,
						Message: fmt.Sprintf("tax should be %s (%s of %s), found %s",
							locale.FormatNumber(expectedTax), locale.FormatPercent(taxRate),
							locale.FormatNumber(expectedSubtotal), locale.FormatNumber(actualTax)),
						AutoFixable: true,
						Expected:    locale.FormatNumber(expectedTax),
						Actual:      locale.FormatNumber(actualTax),
					})
				}
			}
		}
	}
	return issues
}

// TypoCandidate pairs a suspected misspelling with the preferred spelling it
// should be corrected to.
type TypoCandidate struct {
	Column     string
	Variant    string
	Preferred  string
	Similarity float64 // 0..1
	FirstRow   int     // 1-based row of the variant's first occurrence
}

// TypoCandidates scans string-typed categorical columns for pairs of
// near-identical values and proposes correcting the rarer spelling to the
// more frequent one. The cleaner's fixTypos stage consumes the same
// candidates the analyzer reports, so fixes always match findings.
func TypoCandidates(table domain.Table, columns []domain.ColumnAnalysis, threshold float64) []TypoCandidate {
	var candidates []TypoCandidate
	rowCount := len(table.Rows)

	for _, col := range columns {
		if col.Type != domain.TypeString {
			continue
		}
		if col.UniqueCount < 3 || col.UniqueCount > rowCount/2 || col.UniqueCount > typoUniqueCap {
			continue
		}

		freq := make(map[string]int)
		firstRow := make(map[string]int)
		for i, value := range table.Column(col.Name) {
			text := strings.TrimSpace(value.Text())
			if text == "" {
				continue
			}
			freq[text]++
			if _, seen := firstRow[text]; !seen {
				firstRow[text] = i + 1
			}
		}

		// Frequent values first so each variant is compared against its most
		// plausible corrections; ties break alphabetically for determinism.
		values := make([]string, 0, len(freq))
		for v := range freq {
			values = append(values, v)
		}
		sort.Slice(values, func(a, b int) bool {
			if freq[values[a]] != freq[values[b]] {
				return freq[values[a]] > freq[values[b]]
			}
			return values[a] < values[b]
		})

		for vi, variant := range values {
			for pi := 0; pi < vi; pi++ {
				preferred := values[pi]
				sim := similarity(variant, preferred)
				if sim >= threshold && sim < 1.0 {
					candidates = append(candidates, TypoCandidate{
						Column:     col.Name,
						Variant:    variant,
						Preferred:  preferred,
						Similarity: sim,
						FirstRow:   firstRow[variant],
					})
					break // first matching pair per value only
				}
			}
		}
	}
	return candidates
}

// similarity is the normalized Levenshtein ratio: 1 − distance / longer
// length, computed over lower-cased runes.
func similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
	return 1 - float64(dist)/float64(longer)
}

func detectTypos(table domain.Table, columns []domain.ColumnAnalysis, threshold float64) []domain.Issue {
	candidates := TypoCandidates(table, columns, threshold)
	issues := make([]domain.Issue, 0, len(candidates))
	for _, c := range candidates {
		row := c.FirstRow
		issues = append(issues, domain.Issue{
			Type:     domain.IssueTypo,
			Severity: domain.SeverityInfo,
			Row:      &row,
			Column:   c.Column,
			Message: fmt.Sprintf("%q looks like a typo of %q (%.0f%% similar)",
				c.Variant, c.Preferred, c.Similarity*100),
			AutoFixable: true,
			Actual:      c.Variant,
			Suggestion:  c.Preferred,
		})
	}
	return issues
}
