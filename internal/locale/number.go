// Package locale parses and formats values the way Indonesian spreadsheets
// write them, while still accepting the US conventions that show up in mixed
// exports.
package locale

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	currencyPrefixes = []string{"Rp.", "Rp", "IDR", "USD", "US$", "EUR", "€", "$"}

	// 1.234.567 or 1.234,56 — period grouping, comma decimal.
	idGroupedPattern = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+(,\d+)?$`)
	// 1,234,567 or 1,234.56 — comma grouping, period decimal.
	usGroupedPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
	// 1234,56 — bare comma decimal, no grouping.
	commaDecimalPattern = regexp.MustCompile(`^[+-]?\d+,\d+$`)

	printer = message.NewPrinter(language.Indonesian)
)

// ParseNumber interprets raw cell text as a number, stripping known currency
// prefixes and disambiguating Indonesian from US digit grouping by shape.
// It reports false rather than failing loudly: callers treat an unparseable
// cell as "not numeric", never as zero.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	switch {
	case idGroupedPattern.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case usGroupedPattern.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case commaDecimalPattern.MatchString(s):
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsInteger reports whether a parsed number has no fractional part.
func IsInteger(f float64) bool {
	return f == math.Trunc(f)
}

// FormatNumber renders a number with id-ID grouping (1.234,56).
// Non-finite input formats as the "-" placeholder.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatCurrency renders a Rupiah amount, e.g. "Rp 1.500.000".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return "Rp " + printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatPercent renders a ratio as a percentage string, e.g. 0.11 -> "11%".
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "-"
	}
	return printer.Sprintf("%v%%", number.Decimal(ratio*100, number.MaxFractionDigits(2)))
}
