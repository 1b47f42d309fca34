package domain

import (
	"time"

	"github.com/google/uuid"
)

// ColumnType is the semantic type detected for a cell or column.
type ColumnType string

const (
	TypeString     ColumnType = "string"
	TypeNumber     ColumnType = "number"
	TypeInteger    ColumnType = "integer"
	TypeFloat      ColumnType = "float"
	TypeCurrency   ColumnType = "currency"
	TypePercentage ColumnType = "percentage"
	TypeDate       ColumnType = "date"
	TypeDateTime   ColumnType = "datetime"
	TypeTime       ColumnType = "time"
	TypeEmail      ColumnType = "email"
	TypePhone      ColumnType = "phone"
	TypeURL        ColumnType = "url"
	TypeNIK        ColumnType = "nik"
	TypeNPWP       ColumnType = "npwp"
	TypeBoolean    ColumnType = "boolean"
	TypeEmpty      ColumnType = "empty"
	TypeMixed      ColumnType = "mixed"
	TypeUnknown    ColumnType = "unknown"
)

// IsNumeric reports whether values of this type carry a numeric magnitude.
func (t ColumnType) IsNumeric() bool {
	switch t {
	case TypeNumber, TypeInteger, TypeFloat, TypeCurrency, TypePercentage:
		return true
	}
	return false
}

// IsDate reports whether the type is calendar-based.
func (t ColumnType) IsDate() bool {
	return t == TypeDate || t == TypeDateTime
}

// IsIdentifier reports whether the type is a structured identifier whose
// values must validate, not merely parse.
func (t ColumnType) IsIdentifier() bool {
	switch t {
	case TypeNIK, TypeNPWP, TypeEmail, TypePhone:
		return true
	}
	return false
}

// ColumnAnalysis summarizes one column of the input table.
type ColumnAnalysis struct {
	Name         string             `json:"name"`
	Type         ColumnType         `json:"type"`
	Confidence   float64            `json:"confidence"` // % of non-empty values matching Type
	TypeCounts   map[ColumnType]int `json:"typeCounts"`
	FillRate     float64            `json:"fillRate"` // % of rows with a non-empty cell
	UniqueCount  int                `json:"uniqueCount"`
	Samples      []string           `json:"samples,omitempty"` // up to 5 example values
	IsNumeric    bool               `json:"isNumeric"`
	IsDate       bool               `json:"isDate"`
	IsIdentifier bool               `json:"isIdentifier"`
}

// Severity grades how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueType codes the detectors' findings.
type IssueType string

const (
	IssueDuplicate          IssueType = "DUPLICATE"
	IssueEmptyRow           IssueType = "EMPTY_ROW"
	IssueFormatInconsistent IssueType = "FORMAT_INCONSISTENT"
	IssueInvalidNIK         IssueType = "INVALID_NIK"
	IssueInvalidNPWP        IssueType = "INVALID_NPWP"
	IssueInvalidEmail       IssueType = "INVALID_EMAIL"
	IssueInvalidPhone       IssueType = "INVALID_PHONE"
	IssueWhitespace         IssueType = "WHITESPACE"
	IssueOutlier            IssueType = "OUTLIER"
	IssueCalculationError   IssueType = "CALCULATION_ERROR"
	IssuePPNError           IssueType = "PPN_ERROR"
	IssueTypo               IssueType = "TYPO"
)

// Issue is a single data-quality finding. Issues reference positions in the
// input table (Row is 1-based) and are never mutated after detection.
type Issue struct {
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Row         *int      `json:"row,omitempty"`    // nil for whole-column issues
	Column      string    `json:"column,omitempty"` // "" for whole-row issues
	Message     string    `json:"message"`
	AutoFixable bool      `json:"autoFixable"`
	Expected    string    `json:"expected,omitempty"`
	Actual      string    `json:"actual,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// QualityScore aggregates the four weighted sub-scores into a 0-100 overall
// value and a letter grade.
type QualityScore struct {
	Overall      float64 `json:"overall"`
	Grade        string  `json:"grade"`
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Validity     float64 `json:"validity"`
	Uniqueness   float64 `json:"uniqueness"`
}

// Priority ranks suggested actions.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is one human-readable cleaning recommendation.
type Suggestion struct {
	Action      string   `json:"action"`
	Priority    Priority `json:"priority"`
	Message     string   `json:"message"`
	Impact      string   `json:"impact"`
	AutoFixable bool     `json:"autoFixable"`
}

// ColumnInsight carries the optional deep-analysis statistics for a numeric
// column.
type ColumnInsight struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
}

// AnalyzeOptions tune the analysis pass.
type AnalyzeOptions struct {
	DeepAnalysis        bool    `json:"deepAnalysis"`
	DetectOutliers      bool    `json:"detectOutliers"`
	CheckCalculations   bool    `json:"checkCalculations"`
	TaxRate             float64 `json:"taxRate"`
	OutlierThreshold    float64 `json:"outlierThreshold"`
	SimilarityThreshold float64 `json:"similarityThreshold"`
	MaxRowsAnalyze      int     `json:"maxRowsAnalyze"`
}

// DefaultAnalyzeOptions returns the documented defaults (Indonesian VAT 11%,
// IQR k=1.5, similarity 0.85, 10k row cap).
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		DetectOutliers:      true,
		CheckCalculations:   true,
		TaxRate:             0.11,
		OutlierThreshold:    1.5,
		SimilarityThreshold: 0.85,
		MaxRowsAnalyze:      10000,
	}
}

// Normalize fills zero-valued knobs with their defaults so partially
// populated option structs stay usable.
func (o AnalyzeOptions) Normalize() AnalyzeOptions {
	def := DefaultAnalyzeOptions()
	if o.TaxRate <= 0 {
		o.TaxRate = def.TaxRate
	}
	if o.OutlierThreshold <= 0 {
		o.OutlierThreshold = def.OutlierThreshold
	}
	if o.SimilarityThreshold <= 0 || o.SimilarityThreshold > 1 {
		o.SimilarityThreshold = def.SimilarityThreshold
	}
	if o.MaxRowsAnalyze <= 0 {
		o.MaxRowsAnalyze = def.MaxRowsAnalyze
	}
	return o
}

// AnalysisResult is the full product of one analyze call.
type AnalysisResult struct {
	ID          uuid.UUID        `json:"id"`
	GeneratedAt time.Time        `json:"generatedAt"`
	RowCount    int              `json:"rowCount"`
	ColumnCount int              `json:"columnCount"`
	Columns     []ColumnAnalysis `json:"columns"`
	Issues      []Issue          `json:"issues"`
	Score       QualityScore     `json:"score"`
	Suggestions []Suggestion     `json:"suggestions"`
	Insights    []ColumnInsight  `json:"insights,omitempty"`
}
