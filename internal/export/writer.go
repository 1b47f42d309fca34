// Package export renders a table back out as a downloadable file: a styled
// xlsx workbook or plain csv.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rapihdata/rapih/internal/domain"
)

// Format names a supported output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// MimeType returns the content type to serve the format under.
func (f Format) MimeType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

const (
	sheetName   = "Data"
	minColWidth = 10.0
	maxColWidth = 60.0
)

// Write encodes the table in the requested format.
func Write(table domain.Table, format Format) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return writeXLSX(table)
	case FormatCSV:
		return writeCSV(table)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func writeCSV(table domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, header := range table.Headers {
			record[i] = row.Get(header).Text()
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// writeXLSX produces a workbook with a bold, filled header row, a frozen top
// pane, and column widths sized to the longest cell.
func writeXLSX(table domain.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := make([]int, len(table.Headers))
	for i, header := range table.Headers {
		widths[i] = len(header)
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header cell: %w", err)
		}
	}

	for r, row := range table.Rows {
		for c, header := range table.Headers {
			value := row.Get(header)
			if value.IsEmpty() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("resolve cell: %w", err)
			}
			if num, ok := value.Num(); ok {
				err = f.SetCellValue(sheetName, cell, num)
			} else {
				err = f.SetCellValue(sheetName, cell, value.Text())
			}
			if err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
			if n := len(value.Text()); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("resolve column name: %w", err)
		}
		w := float64(width) + 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header row: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName builds a download name from the original upload, swapping the
// extension for the export format.
func FileName(original string, format Format) string {
	base := original
	if idx := strings.LastIndex(original, "."); idx > 0 {
		base = original[:idx]
	}
	if strings.TrimSpace(base) == "" {
		return fmt.Sprintf("cleaned.%s", format)
	}
	return fmt.Sprintf("%s_cleaned.%s", base, format)
}

// FormatFromName guesses the export format from a file name, defaulting to
// csv.
func FormatFromName(name string) Format {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}
