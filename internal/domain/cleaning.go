package domain

import "time"

// CaseType selects the normalization applied by the case transform.
type CaseType string

const (
	CaseUpper CaseType = "upper"
	CaseLower CaseType = "lower"
	CaseTitle CaseType = "title"
)

// CleanOptions toggle the individual pipeline stages. The stage order itself
// is fixed; see clean.Cleaner.
type CleanOptions struct {
	RemoveEmptyRows   bool     `json:"removeEmptyRows"`
	RemoveDuplicates  bool     `json:"removeDuplicates"`
	TrimWhitespace    bool     `json:"trimWhitespace"`
	NormalizeCase     bool     `json:"normalizeCase"`
	StandardizeDates  bool     `json:"standardizeDates"`
	StandardizePhones bool     `json:"standardizePhones"`
	FixCalculations   bool     `json:"fixCalculations"`
	FixTypos          bool     `json:"fixTypos"` // opt-in only, riskier than the rest
	CaseType          CaseType `json:"caseType"`
	DateFormat        string   `json:"dateFormat"`  // display pattern, e.g. dd/MM/yyyy
	PhoneFormat       string   `json:"phoneFormat"` // currently only "+62"
	TaxRate           float64  `json:"taxRate"`
}

// Normalize fills unset knobs with their defaults.
func (o CleanOptions) Normalize() CleanOptions {
	if o.CaseType == "" {
		o.CaseType = CaseTitle
	}
	if o.DateFormat == "" {
		o.DateFormat = "dd/MM/yyyy"
	}
	if o.PhoneFormat == "" {
		o.PhoneFormat = "+62"
	}
	if o.TaxRate <= 0 {
		o.TaxRate = 0.11
	}
	return o
}

// CleaningLogEntry records one pipeline stage that changed at least one cell
// or row.
type CleaningLogEntry struct {
	Operation     string    `json:"operation"`
	Message       string    `json:"message"`
	AffectedCount int       `json:"affectedCount"`
	Timestamp     time.Time `json:"timestamp"`
}

// CleanSummary reports row counts before and after cleaning.
type CleanSummary struct {
	RowsBefore   int `json:"rowsBefore"`
	RowsAfter    int `json:"rowsAfter"`
	CellsChanged int `json:"cellsChanged"`
	RowsRemoved  int `json:"rowsRemoved"`
}

// CleanResult bundles the cleaned table with its audit trail.
type CleanResult struct {
	Data    Table              `json:"data"`
	Summary CleanSummary       `json:"summary"`
	Log     []CleaningLogEntry `json:"log"`
}

// Preset names a pre-bundled CleanOptions set. Presets are option bundles
// over the same pipeline, not separate code paths.
type Preset string

const (
	PresetQuick     Preset = "quick"
	PresetStandard  Preset = "standard"
	PresetFinancial Preset = "financial"
	PresetFull      Preset = "full"
)
