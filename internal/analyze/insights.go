package analyze

import (
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/locale"
)

// buildInsights computes descriptive statistics for each numeric column.
// Only runs when deep analysis is requested.
func buildInsights(table domain.Table, columns []domain.ColumnAnalysis) []domain.ColumnInsight {
	var insights []domain.ColumnInsight
	for _, col := range columns {
		if !col.IsNumeric {
			continue
		}

		var data stats.Float64Data
		for _, value := range table.Column(col.Name) {
			text := strings.TrimSpace(value.Text())
			if text == "" {
				continue
			}
			if f, ok := locale.ParseNumber(text); ok {
				data = append(data, f)
			}
		}
		if len(data) == 0 {
			continue
		}

		min, _ := data.Min()
		max, _ := data.Max()
		mean, _ := data.Mean()
		median, _ := data.Median()
		stddev, _ := data.StandardDeviation()

		insights = append(insights, domain.ColumnInsight{
			Column: col.Name,
			Count:  len(data),
			Min:    min,
			Max:    max,
			Mean:   round2(mean),
			Median: round2(median),
			StdDev: round2(stddev),
		})
	}
	return insights
}
