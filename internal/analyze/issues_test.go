package analyze

import (
	"strings"
	"testing"

	"github.com/rapihdata/rapih/internal/detect"
	"github.com/rapihdata/rapih/internal/domain"
)

func mkTable(t *testing.T, headers []string, records [][]string) domain.Table {
	t.Helper()
	rows := make([]domain.Row, len(records))
	for i, record := range records {
		row := make(domain.Row, len(headers))
		for j, header := range headers {
			row[header] = domain.String(record[j])
		}
		rows[i] = row
	}
	table, err := domain.NewTable(headers, rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func issuesOfType(issues []domain.Issue, typ domain.IssueType) []domain.Issue {
	var out []domain.Issue
	for _, issue := range issues {
		if issue.Type == typ {
			out = append(out, issue)
		}
	}
	return out
}

func TestDetectDuplicates(t *testing.T) {
	table := mkTable(t, []string{"nama", "kota"}, [][]string{
		{"Budi", "Jakarta"},
		{"Siti", "Bandung"},
		{"budi", "jakarta"}, // same content, different case
	})

	issues := detectDuplicates(table)
	if len(issues) != 1 {
		t.Fatalf("expected 1 duplicate issue, got %d", len(issues))
	}
	if *issues[0].Row != 3 {
		t.Fatalf("duplicate row = %d, want 3", *issues[0].Row)
	}
	if !strings.Contains(issues[0].Message, "duplicate of row 1") {
		t.Fatalf("message = %q", issues[0].Message)
	}
}

func TestDetectEmptyRows(t *testing.T) {
	table := mkTable(t, []string{"a", "b"}, [][]string{
		{"x", "y"},
		{"", ""},
		{"z", ""},
	})

	issues := detectEmptyRows(table)
	if len(issues) != 1 {
		t.Fatalf("expected 1 empty-row issue, got %d", len(issues))
	}
	if *issues[0].Row != 2 {
		t.Fatalf("empty row = %d, want 2", *issues[0].Row)
	}

	// Blank rows must not also count as duplicates of each other.
	if dups := detectDuplicates(table); len(dups) != 0 {
		t.Fatalf("blank row counted as duplicate: %+v", dups)
	}
}

func TestDetectInvalidValues(t *testing.T) {
	table := mkTable(t, []string{"nik", "email"}, [][]string{
		{"3201011505990001", "budi@example.com"},
		{"3201011505990002", "siti@example.com"},
		{"9901011505990003", "not-an-email"},
	})
	columns := detect.Table(table)

	issues := detectInvalidValues(table, columns)

	nik := issuesOfType(issues, domain.IssueInvalidNIK)
	if len(nik) != 1 {
		t.Fatalf("expected 1 invalid NIK, got %d", len(nik))
	}
	if *nik[0].Row != 3 || nik[0].Column != "nik" {
		t.Fatalf("unexpected NIK issue location: %+v", nik[0])
	}
	if nik[0].Severity != domain.SeverityError {
		t.Fatalf("NIK severity = %s", nik[0].Severity)
	}

	email := issuesOfType(issues, domain.IssueInvalidEmail)
	if len(email) != 1 || *email[0].Row != 3 {
		t.Fatalf("unexpected email issues: %+v", email)
	}
}

func TestDetectInvalidPhoneIsFixable(t *testing.T) {
	table := mkTable(t, []string{"no_hp"}, [][]string{
		{"081234567890"},
		{"081234567891"},
		{"0215550123"}, // landline in a mobile column
	})
	columns := detect.Table(table)

	issues := issuesOfType(detectInvalidValues(table, columns), domain.IssueInvalidPhone)
	if len(issues) != 1 {
		t.Fatalf("expected 1 phone issue, got %d", len(issues))
	}
	if issues[0].Severity != domain.SeverityWarning || !issues[0].AutoFixable {
		t.Fatalf("phone issue should be a fixable warning: %+v", issues[0])
	}
}

func TestDetectWhitespace(t *testing.T) {
	table := mkTable(t, []string{"nama"}, [][]string{
		{" Budi"},
		{"Siti  Aminah"},
		{"Agus"},
	})

	issues := detectWhitespace(table)
	if len(issues) != 2 {
		t.Fatalf("expected 2 whitespace issues, got %d", len(issues))
	}
	if *issues[0].Row != 1 || *issues[1].Row != 2 {
		t.Fatalf("unexpected rows: %+v", issues)
	}
}

func TestDetectOutliers(t *testing.T) {
	values := []string{"10", "11", "9", "12", "10", "11", "1000", "9", "10", "11"}
	records := make([][]string, len(values))
	for i, v := range values {
		records[i] = []string{v}
	}
	table := mkTable(t, []string{"nilai"}, records)
	columns := detect.Table(table)

	issues := detectOutliers(table, columns, 1.5)
	if len(issues) != 1 {
		t.Fatalf("expected 1 outlier, got %d: %+v", len(issues), issues)
	}
	if *issues[0].Row != 7 {
		t.Fatalf("outlier row = %d, want 7", *issues[0].Row)
	}
	if !strings.Contains(issues[0].Message, "too large") {
		t.Fatalf("message = %q", issues[0].Message)
	}
}

func TestDetectOutliersNeedsEnoughSamples(t *testing.T) {
	table := mkTable(t, []string{"nilai"}, [][]string{
		{"10"}, {"11"}, {"1000"},
	})
	columns := detect.Table(table)
	if issues := detectOutliers(table, columns, 1.5); len(issues) != 0 {
		t.Fatalf("small column should be skipped, got %+v", issues)
	}
}

func TestDetectCalculationErrors(t *testing.T) {
	table := mkTable(t, []string{"produk", "qty", "harga_satuan", "subtotal", "ppn"}, [][]string{
		{"Kabel", "2", "500000", "900000", "110000"},
		{"Switch", "1", "200000", "200000", "22000"},
	})

	issues := detectCalculationErrors(table, 0.11)

	calc := issuesOfType(issues, domain.IssueCalculationError)
	if len(calc) != 1 {
		t.Fatalf("expected 1 calculation error, got %d: %+v", len(calc), issues)
	}
	if *calc[0].Row != 1 || calc[0].Column != "subtotal" {
		t.Fatalf("unexpected location: %+v", calc[0])
	}
	if calc[0].Expected != "1.000.000" {
		t.Fatalf("expected = %q", calc[0].Expected)
	}
	if calc[0].Actual != "900.000" {
		t.Fatalf("actual = %q", calc[0].Actual)
	}

	if ppn := issuesOfType(issues, domain.IssuePPNError); len(ppn) != 0 {
		t.Fatalf("tax matches expectation, got %+v", ppn)
	}
}

func TestDetectPPNErrors(t *testing.T) {
	table := mkTable(t, []string{"qty", "harga", "ppn"}, [][]string{
		{"10", "100000", "55000"}, // should be 110000
	})

	issues := issuesOfType(detectCalculationErrors(table, 0.11), domain.IssuePPNError)
	if len(issues) != 1 {
		t.Fatalf("expected 1 PPN error, got %d", len(issues))
	}
	if issues[0].Expected != "110.000" {
		t.Fatalf("expected = %q", issues[0].Expected)
	}
}

func TestTypoCandidates(t *testing.T) {
	table := mkTable(t, []string{"kota"}, [][]string{
		{"Jakarta"}, {"Jakarta"}, {"Jakarta"},
		{"Jakrta"},
		{"Bandung"}, {"Bandung"},
	})
	columns := detect.Table(table)

	candidates := TypoCandidates(table, columns, 0.85)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	c := candidates[0]
	if c.Variant != "Jakrta" || c.Preferred != "Jakarta" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.FirstRow != 4 {
		t.Fatalf("first row = %d, want 4", c.FirstRow)
	}
}

func TestTypoCandidatesSkipsFreeTextColumns(t *testing.T) {
	// All-distinct values look like free text, not categories.
	table := mkTable(t, []string{"catatan"}, [][]string{
		{"apel"}, {"apal"}, {"jeruk"}, {"mangga"},
	})
	columns := detect.Table(table)
	if got := TypoCandidates(table, columns, 0.85); len(got) != 0 {
		t.Fatalf("free-text column should be skipped, got %+v", got)
	}
}

func TestScoreTablePerfect(t *testing.T) {
	table := mkTable(t, []string{"nama", "email"}, [][]string{
		{"Budi", "budi@example.com"},
		{"Siti", "siti@example.com"},
	})
	columns := detect.Table(table)

	score := scoreTable(table, columns, nil)
	if score.Overall != 100 || score.Grade != "A" {
		t.Fatalf("score = %+v", score)
	}
}

func TestScoreTableDegrades(t *testing.T) {
	table := mkTable(t, []string{"nama", "email"}, [][]string{
		{"Budi", "budi@example.com"},
		{"Budi", "budi@example.com"},
		{"Siti", ""},
		{"Agus", "not-an-email"},
	})
	columns := detect.Table(table)
	issues := append(detectDuplicates(table), detectInvalidValues(table, columns)...)

	score := scoreTable(table, columns, issues)
	if score.Completeness != 87.5 {
		t.Fatalf("completeness = %v", score.Completeness)
	}
	if score.Uniqueness != 75 {
		t.Fatalf("uniqueness = %v", score.Uniqueness)
	}
	if score.Validity != 75 {
		t.Fatalf("validity = %v", score.Validity)
	}
	if score.Overall >= 100 {
		t.Fatalf("overall = %v", score.Overall)
	}
}

func TestBuildSuggestions(t *testing.T) {
	issues := []domain.Issue{
		{Type: domain.IssueDuplicate},
		{Type: domain.IssueDuplicate},
		{Type: domain.IssueWhitespace},
	}
	score := domain.QualityScore{Completeness: 95}

	suggestions := buildSuggestions(issues, score)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d: %+v", len(suggestions), suggestions)
	}
	if suggestions[0].Action != "remove_duplicates" || suggestions[0].Priority != domain.PriorityHigh {
		t.Fatalf("first suggestion = %+v", suggestions[0])
	}
	if suggestions[1].Action != "trim_whitespace" || suggestions[1].Priority != domain.PriorityLow {
		t.Fatalf("second suggestion = %+v", suggestions[1])
	}
}
