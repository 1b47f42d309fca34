package locale

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1234,56", 1234.56, true},
		{"1.500.000", 1500000, true},
		{"Rp 1.500.000", 1500000, true},
		{"Rp. 2.500", 2500, true},
		{"IDR 750.000", 750000, true},
		{"$1,000.50", 1000.50, true},
		{"USD 99.95", 99.95, true},
		{"-1.000", -1000, true},
		{"42", 42, true},
		{"3.14", 3.14, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12%", 0, false},
		{"Rp", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseNumber(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsInteger(t *testing.T) {
	if !IsInteger(42) {
		t.Fatal("expected 42 to be an integer")
	}
	if IsInteger(3.14) {
		t.Fatal("expected 3.14 not to be an integer")
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234.56); got != "1.234,56" {
		t.Fatalf("FormatNumber(1234.56) = %q", got)
	}
	if got := FormatCurrency(1500000); got != "Rp 1.500.000" {
		t.Fatalf("FormatCurrency(1500000) = %q", got)
	}
	if got := FormatPercent(0.11); got != "11%" {
		t.Fatalf("FormatPercent(0.11) = %q", got)
	}
}
