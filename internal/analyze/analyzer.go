// Package analyze runs the data-quality assessment: per-column type
// detection, the issue detector battery, quality scoring, and cleaning
// suggestions.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rapihdata/rapih/internal/detect"
	"github.com/rapihdata/rapih/internal/domain"
)

// Service analyzes tables. It is stateless; every call is independent and
// side-effect-free, so one Service may serve concurrent requests.
type Service struct {
	logger *zap.Logger
}

// NewService creates an analyzer. A nil logger disables logging.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Analyze inspects the table and returns the full assessment. The input
// table is never modified. Structural problems with the table itself (no
// columns, no rows) are the only errors; messy data becomes Issue records
// instead of failures.
func (s *Service) Analyze(ctx context.Context, table domain.Table, opts domain.AnalyzeOptions) (domain.AnalysisResult, error) {
	opts = opts.Normalize()

	if len(table.Headers) == 0 {
		return domain.AnalysisResult{}, fmt.Errorf("%w: no columns", domain.ErrEmptyTable)
	}
	if len(table.Rows) == 0 {
		return domain.AnalysisResult{}, fmt.Errorf("%w: no rows", domain.ErrEmptyTable)
	}
	if err := ctx.Err(); err != nil {
		return domain.AnalysisResult{}, err
	}

	working := table
	if len(working.Rows) > opts.MaxRowsAnalyze {
		s.logger.Info("capping analyzed rows",
			zap.Int("rows", len(table.Rows)),
			zap.Int("cap", opts.MaxRowsAnalyze))
		working = domain.Table{Headers: table.Headers, Rows: table.Rows[:opts.MaxRowsAnalyze]}
	}

	start := time.Now()
	columns := detect.Table(working)

	issues := detectDuplicates(working)
	issues = append(issues, detectEmptyRows(working)...)
	issues = append(issues, detectFormatInconsistency(working, columns)...)
	issues = append(issues, detectInvalidValues(working, columns)...)
	issues = append(issues, detectWhitespace(working)...)
	if opts.DetectOutliers {
		issues = append(issues, detectOutliers(working, columns, opts.OutlierThreshold)...)
	}
	if opts.CheckCalculations {
		issues = append(issues, detectCalculationErrors(working, opts.TaxRate)...)
	}
	issues = append(issues, detectTypos(working, columns, opts.SimilarityThreshold)...)

	score := scoreTable(working, columns, issues)

	result := domain.AnalysisResult{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
		RowCount:    len(working.Rows),
		ColumnCount: len(working.Headers),
		Columns:     columns,
		Issues:      issues,
		Score:       score,
		Suggestions: buildSuggestions(issues, score),
	}
	if opts.DeepAnalysis {
		result.Insights = buildInsights(working, columns)
	}

	s.logger.Info("analysis complete",
		zap.String("report_id", result.ID.String()),
		zap.Int("rows", result.RowCount),
		zap.Int("columns", result.ColumnCount),
		zap.Int("issues", len(issues)),
		zap.Float64("score", score.Overall),
		zap.Duration("took", time.Since(start)))

	return result, nil
}
