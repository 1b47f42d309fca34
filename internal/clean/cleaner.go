// Package clean applies the deterministic cleaning pipeline: a fixed-order
// sequence of individually toggleable transforms that produce a new table
// plus an audit log, never mutating the input.
package clean

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rapihdata/rapih/internal/analyze"
	"github.com/rapihdata/rapih/internal/detect"
	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/locale"
	"github.com/rapihdata/rapih/pkg/validator"
)

// Tolerances mirror the analyzer's calculation check so every detected
// CALCULATION_ERROR/PPN_ERROR is repairable and nothing else is touched.
const (
	subtotalTolerance = 1.0
	taxToleranceFloor = 100.0
	taxTolerancePct   = 0.01

	typoSimilarityThreshold = 0.85
)

var interiorSpaceRun = regexp.MustCompile(` {2,}`)

// Cleaner runs the transform pipeline. Stateless and safe for concurrent
// use.
type Cleaner struct {
	logger *zap.Logger
	titler cases.Caser
}

// NewCleaner creates a Cleaner. A nil logger disables logging.
func NewCleaner(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{
		logger: logger,
		titler: cases.Title(language.Indonesian),
	}
}

// stage couples a pipeline step with its option toggle. Order is load-
// bearing: rows are removed before per-cell passes shrink-wrap the working
// set, and trimming precedes case normalization so title casing never sees
// leading spaces.
type stage struct {
	name    string
	enabled func(domain.CleanOptions) bool
	apply   func(*pipeline) (int, string)
}

var stages = []stage{
	{"remove_empty_rows", func(o domain.CleanOptions) bool { return o.RemoveEmptyRows }, (*pipeline).removeEmptyRows},
	{"remove_duplicates", func(o domain.CleanOptions) bool { return o.RemoveDuplicates }, (*pipeline).removeDuplicates},
	{"trim_whitespace", func(o domain.CleanOptions) bool { return o.TrimWhitespace }, (*pipeline).trimWhitespace},
	{"normalize_case", func(o domain.CleanOptions) bool { return o.NormalizeCase }, (*pipeline).normalizeCase},
	{"standardize_dates", func(o domain.CleanOptions) bool { return o.StandardizeDates }, (*pipeline).standardizeDates},
	{"standardize_phones", func(o domain.CleanOptions) bool { return o.StandardizePhones }, (*pipeline).standardizePhones},
	{"fix_calculations", func(o domain.CleanOptions) bool { return o.FixCalculations }, (*pipeline).fixCalculations},
	{"fix_typos", func(o domain.CleanOptions) bool { return o.FixTypos }, (*pipeline).fixTypos},
}

// pipeline is the mutable working state of one Clean call.
type pipeline struct {
	cleaner *Cleaner
	table   domain.Table
	columns []domain.ColumnAnalysis
	opts    domain.CleanOptions
}

// Clean runs the enabled transforms over a copy of the table. Column types
// are re-derived up front (cleaning options are decoupled from any earlier
// analyze call), and each stage that changes at least one cell or row
// appends a log entry.
func (c *Cleaner) Clean(ctx context.Context, table domain.Table, opts domain.CleanOptions) (domain.CleanResult, error) {
	opts = opts.Normalize()

	if len(table.Headers) == 0 {
		return domain.CleanResult{}, fmt.Errorf("%w: no columns", domain.ErrEmptyTable)
	}
	if err := ctx.Err(); err != nil {
		return domain.CleanResult{}, err
	}

	p := &pipeline{
		cleaner: c,
		table:   table.Clone(),
		columns: detect.Table(table),
		opts:    opts,
	}

	rowsBefore := len(table.Rows)
	cellsChanged := 0
	var log []domain.CleaningLogEntry

	for _, st := range stages {
		if !st.enabled(opts) {
			continue
		}
		affected, message := st.apply(p)
		if affected == 0 {
			continue
		}
		if st.name != "remove_empty_rows" && st.name != "remove_duplicates" {
			cellsChanged += affected
		}
		log = append(log, domain.CleaningLogEntry{
			Operation:     st.name,
			Message:       message,
			AffectedCount: affected,
			Timestamp:     time.Now(),
		})
		c.logger.Debug("cleaning stage applied",
			zap.String("stage", st.name),
			zap.Int("affected", affected))
	}

	result := domain.CleanResult{
		Data: p.table,
		Summary: domain.CleanSummary{
			RowsBefore:   rowsBefore,
			RowsAfter:    len(p.table.Rows),
			RowsRemoved:  rowsBefore - len(p.table.Rows),
			CellsChanged: cellsChanged,
		},
		Log: log,
	}

	c.logger.Info("cleaning complete",
		zap.Int("rows_before", rowsBefore),
		zap.Int("rows_after", result.Summary.RowsAfter),
		zap.Int("cells_changed", cellsChanged),
		zap.Int("stages_applied", len(log)))

	return result, nil
}

func (p *pipeline) removeEmptyRows() (int, string) {
	kept := p.table.Rows[:0:0]
	removed := 0
	for _, row := range p.table.Rows {
		if row.IsBlank(p.table.Headers) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	p.table.Rows = kept
	return removed, fmt.Sprintf("removed %d empty rows", removed)
}

func (p *pipeline) removeDuplicates() (int, string) {
	seen := make(map[string]struct{}, len(p.table.Rows))
	kept := p.table.Rows[:0:0]
	removed := 0
	for _, row := range p.table.Rows {
		sig := row.Signature(p.table.Headers)
		if _, dup := seen[sig]; dup {
			removed++
			continue
		}
		seen[sig] = struct{}{}
		kept = append(kept, row)
	}
	p.table.Rows = kept
	return removed, fmt.Sprintf("removed %d duplicate rows, keeping first occurrences", removed)
}

func (p *pipeline) trimWhitespace() (int, string) {
	changed := p.rewriteCells(func(_ string, text string) (string, bool) {
		cleaned := interiorSpaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
		return cleaned, cleaned != text
	})
	return changed, fmt.Sprintf("trimmed whitespace in %d cells", changed)
}

func (p *pipeline) normalizeCase() (int, string) {
	stringCols := p.columnsOfType(func(t domain.ColumnType) bool { return t == domain.TypeString })
	changed := p.rewriteColumnCells(stringCols, func(text string) (string, bool) {
		var converted string
		switch p.opts.CaseType {
		case domain.CaseUpper:
			converted = strings.ToUpper(text)
		case domain.CaseLower:
			converted = strings.ToLower(text)
		default:
			converted = p.cleaner.titler.String(strings.ToLower(text))
		}
		return converted, converted != text
	})
	return changed, fmt.Sprintf("normalized case (%s) in %d cells", p.opts.CaseType, changed)
}

func (p *pipeline) standardizeDates() (int, string) {
	dateCols := p.columnsOfType(domain.ColumnType.IsDate)
	changed := p.rewriteColumnCells(dateCols, func(text string) (string, bool) {
		t, ok := locale.ParseDate(text)
		if !ok {
			return text, false
		}
		formatted := locale.FormatDate(t, p.opts.DateFormat)
		return formatted, formatted != text
	})
	return changed, fmt.Sprintf("standardized %d date cells to %s", changed, p.opts.DateFormat)
}

func (p *pipeline) standardizePhones() (int, string) {
	phoneCols := p.columnsOfType(func(t domain.ColumnType) bool { return t == domain.TypePhone })
	changed := p.rewriteColumnCells(phoneCols, func(text string) (string, bool) {
		normalized, ok := validator.NormalizePhoneID(text)
		if !ok {
			return text, false // leave unrecognized values untouched
		}
		return normalized, normalized != text
	})
	return changed, fmt.Sprintf("normalized %d phone numbers to %s", changed, p.opts.PhoneFormat)
}

func (p *pipeline) fixCalculations() (int, string) {
	roles := detect.ResolveRoles(p.table.Headers)
	qtyCol, hasQty := roles[detect.RoleQuantity]
	priceCol, hasPrice := roles[detect.RolePrice]
	subtotalCol, hasSubtotal := roles[detect.RoleSubtotal]
	taxCol, hasTax := roles[detect.RoleTax]
	totalCol, hasTotal := roles[detect.RoleTotal]

	if !hasQty || !hasPrice {
		return 0, ""
	}

	changed := 0
	for _, row := range p.table.Rows {
		qty, okQty := locale.ParseNumber(row.Get(qtyCol).Text())
		price, okPrice := locale.ParseNumber(row.Get(priceCol).Text())
		if !okQty || !okPrice {
			continue
		}
		subtotal := qty * price

		if hasSubtotal && p.overwriteNumber(row, subtotalCol, subtotal, subtotalTolerance) {
			changed++
		}

		tax := subtotal * p.opts.TaxRate
		if hasTax {
			tolerance := taxTolerancePct * tax
			if tolerance < taxToleranceFloor {
				tolerance = taxToleranceFloor
			}
			if p.overwriteNumber(row, taxCol, tax, tolerance) {
				changed++
			}
		}

		if hasTotal {
			total := subtotal
			if hasTax {
				total += tax
			}
			if p.overwriteNumber(row, totalCol, total, subtotalTolerance) {
				changed++
			}
		}
	}
	return changed, fmt.Sprintf("recalculated %d subtotal/tax/total cells", changed)
}

// overwriteNumber replaces the cell when its current value differs from the
// expectation beyond tolerance (or cannot be parsed at all).
func (p *pipeline) overwriteNumber(row domain.Row, col string, expected, tolerance float64) bool {
	current, ok := locale.ParseNumber(row.Get(col).Text())
	if ok {
		if diff := expected - current; diff <= tolerance && diff >= -tolerance {
			return false
		}
	}
	text := strconv.FormatFloat(expected, 'f', -1, 64)
	row[col] = domain.Number(expected, text)
	return true
}

func (p *pipeline) fixTypos() (int, string) {
	candidates := analyze.TypoCandidates(p.table, p.columns, typoSimilarityThreshold)
	if len(candidates) == 0 {
		return 0, ""
	}

	replacements := make(map[string]map[string]string, len(candidates)) // column -> variant -> preferred
	for _, c := range candidates {
		if replacements[c.Column] == nil {
			replacements[c.Column] = make(map[string]string)
		}
		replacements[c.Column][c.Variant] = c.Preferred
	}

	changed := 0
	for _, row := range p.table.Rows {
		for col, byVariant := range replacements {
			text := strings.TrimSpace(row.Get(col).Text())
			if preferred, ok := byVariant[text]; ok {
				row[col] = domain.String(preferred)
				changed++
			}
		}
	}
	return changed, fmt.Sprintf("corrected %d suspected typos", changed)
}

// columnsOfType selects column names whose detected type satisfies the
// predicate.
func (p *pipeline) columnsOfType(match func(domain.ColumnType) bool) []string {
	var out []string
	for _, col := range p.columns {
		if match(col.Type) {
			out = append(out, col.Name)
		}
	}
	return out
}

// rewriteCells applies the transform to every non-empty cell of the table.
func (p *pipeline) rewriteCells(transform func(col, text string) (string, bool)) int {
	changed := 0
	for _, row := range p.table.Rows {
		for _, col := range p.table.Headers {
			value := row.Get(col)
			if value.IsEmpty() {
				continue
			}
			if next, ok := transform(col, value.Text()); ok {
				row[col] = domain.String(next)
				changed++
			}
		}
	}
	return changed
}

// rewriteColumnCells applies the transform to non-empty cells of the listed
// columns only.
func (p *pipeline) rewriteColumnCells(columns []string, transform func(text string) (string, bool)) int {
	changed := 0
	for _, row := range p.table.Rows {
		for _, col := range columns {
			value := row.Get(col)
			if value.IsEmpty() {
				continue
			}
			if next, ok := transform(value.Text()); ok {
				row[col] = domain.String(next)
				changed++
			}
		}
	}
	return changed
}
