package analyze

import (
	"fmt"

	"github.com/rapihdata/rapih/internal/domain"
)

// lowCompletenessThreshold triggers the fill-missing-values suggestion.
const lowCompletenessThreshold = 80.0

// buildSuggestions maps issue-group sizes and the score breakdown into a
// prioritized action list. The mapping is deterministic: the same issues
// always produce the same suggestions in the same order.
func buildSuggestions(issues []domain.Issue, score domain.QualityScore) []domain.Suggestion {
	counts := make(map[domain.IssueType]int)
	for _, issue := range issues {
		counts[issue.Type]++
	}

	var suggestions []domain.Suggestion

	if n := counts[domain.IssueDuplicate]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "remove_duplicates",
			Priority:    domain.PriorityHigh,
			Message:     fmt.Sprintf("Remove %d duplicate rows", n),
			Impact:      "Duplicates inflate counts and distort totals",
			AutoFixable: true,
		})
	}

	if n := counts[domain.IssueCalculationError] + counts[domain.IssuePPNError]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "fix_calculations",
			Priority:    domain.PriorityHigh,
			Message:     fmt.Sprintf("Recalculate %d incorrect subtotal/tax cells", n),
			Impact:      "Wrong amounts propagate into reports and invoices",
			AutoFixable: true,
		})
	}

	if n := counts[domain.IssueEmptyRow]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "remove_empty_rows",
			Priority:    domain.PriorityMedium,
			Message:     fmt.Sprintf("Remove %d empty rows", n),
			Impact:      "Empty rows break imports and row counts",
			AutoFixable: true,
		})
	}

	if n := counts[domain.IssueFormatInconsistent]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "standardize_formats",
			Priority:    domain.PriorityMedium,
			Message:     fmt.Sprintf("Standardize %d columns with mixed value formats", n),
			Impact:      "Mixed formats make columns unusable for sorting and math",
			AutoFixable: false,
		})
	}

	if score.Completeness < lowCompletenessThreshold {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "fill_missing_values",
			Priority:    domain.PriorityMedium,
			Message:     fmt.Sprintf("Only %.0f%% of cells are filled; complete the missing data", score.Completeness),
			Impact:      "Gaps reduce the reliability of any aggregate",
			AutoFixable: false,
		})
	}

	if n := counts[domain.IssueInvalidPhone]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "standardize_phones",
			Priority:    domain.PriorityMedium,
			Message:     fmt.Sprintf("Normalize %d phone numbers to +62 format", n),
			Impact:      "Unnormalized numbers fail messaging integrations",
			AutoFixable: true,
		})
	}

	if n := counts[domain.IssueTypo]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "fix_typos",
			Priority:    domain.PriorityLow,
			Message:     fmt.Sprintf("Review %d suspected typos in categorical columns", n),
			Impact:      "Spelling variants split categories when grouping",
			AutoFixable: true,
		})
	}

	if n := counts[domain.IssueWhitespace]; n > 0 {
		suggestions = append(suggestions, domain.Suggestion{
			Action:      "trim_whitespace",
			Priority:    domain.PriorityLow,
			Message:     fmt.Sprintf("Trim whitespace in %d cells", n),
			Impact:      "Stray spaces break equality checks and lookups",
			AutoFixable: true,
		})
	}

	return suggestions
}
