package detect

import (
	"testing"

	"github.com/rapihdata/rapih/internal/domain"
)

func TestValueType(t *testing.T) {
	cases := []struct {
		in   string
		want domain.ColumnType
	}{
		{"", domain.TypeEmpty},
		{"   ", domain.TypeEmpty},
		{"3201011505990001", domain.TypeNIK},
		{"01.234.567.8-901.234", domain.TypeNPWP},
		{"012345678901234", domain.TypeNPWP},
		{"081234567890", domain.TypePhone},
		{"+62 812 3456 7890", domain.TypePhone},
		{"Rp 1.500.000", domain.TypeCurrency},
		{"IDR 250.000", domain.TypeCurrency},
		{"$1,000.50", domain.TypeCurrency},
		{"budi@example.com", domain.TypeEmail},
		{"https://example.com/x", domain.TypeURL},
		{"12,5%", domain.TypePercentage},
		{"2024-01-15", domain.TypeDate},
		{"15/01/2024", domain.TypeDate},
		{"17 Agustus 1945", domain.TypeDate},
		{"2024-01-15 10:30:00", domain.TypeDateTime},
		{"10:30", domain.TypeTime},
		{"ya", domain.TypeBoolean},
		{"Aktif", domain.TypeBoolean},
		{"42", domain.TypeInteger},
		{"1.500.000", domain.TypeInteger},
		{"3,14", domain.TypeFloat},
		{"Budi Santoso", domain.TypeString},
	}

	for _, tc := range cases {
		if got := ValueType(tc.in, Hints{}); got != tc.want {
			t.Fatalf("ValueType(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValueTypeHeaderHints(t *testing.T) {
	// A bare grouped number is currency only under a currency-hinted header.
	if got := ValueType("5.000", Hints{Currency: true}); got != domain.TypeCurrency {
		t.Fatalf("hinted = %s, want currency", got)
	}
	if got := ValueType("5.000", Hints{}); got != domain.TypeInteger {
		t.Fatalf("unhinted = %s, want integer", got)
	}
}

func TestHeaderHints(t *testing.T) {
	if h := HeaderHints("Harga Satuan"); !h.Currency {
		t.Fatal("expected currency hint for Harga Satuan")
	}
	if h := HeaderHints("tanggal_lahir"); !h.Date {
		t.Fatal("expected date hint for tanggal_lahir")
	}
	if h := HeaderHints("No. HP"); !h.Phone {
		t.Fatal("expected phone hint for No. HP")
	}
	if h := HeaderHints("nama"); h.Currency || h.Date || h.Phone {
		t.Fatal("expected no hints for nama")
	}
}

func TestAnalyzeColumn(t *testing.T) {
	values := []domain.Value{
		domain.String("budi@example.com"),
		domain.String("siti@example.com"),
		domain.String("agus@example.com"),
		domain.Empty(),
	}

	col := AnalyzeColumn("email", values)
	if col.Type != domain.TypeEmail {
		t.Fatalf("type = %s", col.Type)
	}
	if col.Confidence != 100 {
		t.Fatalf("confidence = %v", col.Confidence)
	}
	if col.FillRate != 75 {
		t.Fatalf("fill rate = %v", col.FillRate)
	}
	if col.UniqueCount != 3 {
		t.Fatalf("unique count = %d", col.UniqueCount)
	}
	if !col.IsIdentifier {
		t.Fatal("email should be an identifier type")
	}
}

func TestAnalyzeColumnMixedDemotion(t *testing.T) {
	// Three distinct types, none reaching 70% dominance.
	values := []domain.Value{
		domain.String("abc"),
		domain.String("def"),
		domain.String("42"),
		domain.String("43"),
		domain.String("2024-01-15"),
		domain.String("2024-01-16"),
	}
	col := AnalyzeColumn("campuran", values)
	if col.Type != domain.TypeMixed {
		t.Fatalf("type = %s, want mixed", col.Type)
	}
}

func TestAnalyzeColumnOneStrayValueIsNotMixed(t *testing.T) {
	values := []domain.Value{
		domain.String("42"),
		domain.String("43"),
		domain.String("44"),
		domain.String("abc"),
	}
	col := AnalyzeColumn("angka", values)
	if col.Type != domain.TypeInteger {
		t.Fatalf("type = %s, want integer", col.Type)
	}
	if col.Confidence != 75 {
		t.Fatalf("confidence = %v", col.Confidence)
	}
}

func TestAnalyzeColumnAllEmpty(t *testing.T) {
	col := AnalyzeColumn("kosong", []domain.Value{domain.Empty(), domain.Empty()})
	if col.Type != domain.TypeEmpty {
		t.Fatalf("type = %s", col.Type)
	}
	if col.Confidence != 100 {
		t.Fatalf("confidence = %v", col.Confidence)
	}
	if col.FillRate != 0 {
		t.Fatalf("fill rate = %v", col.FillRate)
	}
}

func TestTableKeepsHeaderOrder(t *testing.T) {
	table := domain.Table{
		Headers: []string{"b", "a"},
		Rows: []domain.Row{
			{"b": domain.String("1"), "a": domain.String("x")},
		},
	}
	cols := Table(table)
	if len(cols) != 2 || cols[0].Name != "b" || cols[1].Name != "a" {
		t.Fatalf("unexpected column order: %+v", cols)
	}
}

func TestResolveRoles(t *testing.T) {
	roles := ResolveRoles([]string{"qty", "harga_satuan", "subtotal", "ppn", "total"})

	want := map[Role]string{
		RoleQuantity: "qty",
		RolePrice:    "harga_satuan",
		RoleSubtotal: "subtotal",
		RoleTax:      "ppn",
		RoleTotal:    "total",
	}
	for role, header := range want {
		if roles[role] != header {
			t.Fatalf("role %s = %q, want %q", role, roles[role], header)
		}
	}
}

func TestResolveRolesNoDoubleClaim(t *testing.T) {
	// "subtotal" must not also be claimed by the total role, and
	// "total_harga" must resolve to total, not price.
	roles := ResolveRoles([]string{"subtotal", "total_harga", "harga"})
	if roles[RoleSubtotal] != "subtotal" {
		t.Fatalf("subtotal = %q", roles[RoleSubtotal])
	}
	if roles[RoleTotal] != "total_harga" {
		t.Fatalf("total = %q", roles[RoleTotal])
	}
	if roles[RolePrice] != "harga" {
		t.Fatalf("price = %q", roles[RolePrice])
	}
}
