package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rapihdata/rapih/internal/domain"
)

func sampleTable() domain.Table {
	return domain.Table{
		Headers: []string{"nama", "nilai"},
		Rows: []domain.Row{
			{"nama": domain.String("Budi"), "nilai": domain.Number(42, "42")},
			{"nama": domain.String("Siti"), "nilai": domain.Empty()},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	payload, err := Write(sampleTable(), FormatCSV)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "nama,nilai\nBudi,42\nSiti,\n"
	if string(payload) != want {
		t.Fatalf("csv = %q, want %q", payload, want)
	}
}

func TestWriteXLSX(t *testing.T) {
	payload, err := Write(sampleTable(), FormatXLSX)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Data" {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0] != "nama" || rows[0][1] != "nilai" {
		t.Fatalf("header row = %v", rows[0])
	}
	if rows[1][0] != "Budi" || rows[1][1] != "42" {
		t.Fatalf("data row = %v", rows[1])
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	if _, err := Write(sampleTable(), Format("pdf")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("penjualan.xlsx", FormatCSV); got != "penjualan_cleaned.csv" {
		t.Fatalf("FileName = %q", got)
	}
	if got := FileName("data.csv", FormatXLSX); got != "data_cleaned.xlsx" {
		t.Fatalf("FileName = %q", got)
	}
	if got := FileName("", FormatCSV); got != "cleaned.csv" {
		t.Fatalf("FileName empty = %q", got)
	}
}

func TestFormatFromName(t *testing.T) {
	if FormatFromName("x.XLSX") != FormatXLSX {
		t.Fatal("xlsx not detected")
	}
	if FormatFromName("x.csv") != FormatCSV {
		t.Fatal("csv should be default")
	}
}

func TestMimeType(t *testing.T) {
	if !strings.Contains(FormatXLSX.MimeType(), "spreadsheet") {
		t.Fatalf("xlsx mime = %q", FormatXLSX.MimeType())
	}
	if FormatCSV.MimeType() != "text/csv" {
		t.Fatalf("csv mime = %q", FormatCSV.MimeType())
	}
}
