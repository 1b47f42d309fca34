package analyze

import (
	"math"
	"strings"

	"github.com/rapihdata/rapih/internal/domain"
)

// Sub-score weights; they must sum to 1.
const (
	weightCompleteness = 0.30
	weightConsistency  = 0.25
	weightValidity     = 0.25
	weightUniqueness   = 0.20
)

// validityIssueTypes are the findings that count against the validity
// sub-score.
var validityIssueTypes = map[domain.IssueType]struct{}{
	domain.IssueInvalidNIK:       {},
	domain.IssueInvalidNPWP:      {},
	domain.IssueInvalidEmail:     {},
	domain.IssueCalculationError: {},
	domain.IssuePPNError:         {},
}

func scoreTable(table domain.Table, columns []domain.ColumnAnalysis, issues []domain.Issue) domain.QualityScore {
	rows := len(table.Rows)
	cols := len(table.Headers)

	filled := 0
	for _, row := range table.Rows {
		for _, col := range table.Headers {
			if strings.TrimSpace(row.Get(col).Text()) != "" {
				filled++
			}
		}
	}
	completeness := 0.0
	if rows > 0 && cols > 0 {
		completeness = float64(filled) / float64(rows*cols) * 100
	}

	mixed := 0
	for _, col := range columns {
		if col.Type == domain.TypeMixed {
			mixed++
		}
	}
	consistency := 100.0
	if cols > 0 {
		consistency = float64(cols-mixed) / float64(cols) * 100
	}

	invalid := 0
	duplicates := 0
	for _, issue := range issues {
		if _, ok := validityIssueTypes[issue.Type]; ok {
			invalid++
		}
		if issue.Type == domain.IssueDuplicate {
			duplicates++
		}
	}
	validity := 100.0
	uniqueness := 100.0
	if rows > 0 {
		validity = 100 - float64(invalid)/float64(rows)*100
		if validity < 0 {
			validity = 0
		}
		uniqueness = float64(rows-duplicates) / float64(rows) * 100
	}

	overall := completeness*weightCompleteness +
		consistency*weightConsistency +
		validity*weightValidity +
		uniqueness*weightUniqueness

	return domain.QualityScore{
		Overall:      round2(overall),
		Grade:        grade(overall),
		Completeness: round2(completeness),
		Consistency:  round2(consistency),
		Validity:     round2(validity),
		Uniqueness:   round2(uniqueness),
	}
}

func grade(overall float64) string {
	switch {
	case overall >= 90:
		return "A"
	case overall >= 75:
		return "B"
	case overall >= 50:
		return "C"
	case overall >= 25:
		return "D"
	default:
		return "F"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
