package locale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first layouts come before month-first
// because dd/MM is the locale-likely reading of an ambiguous date; the first
// layout that yields a valid date wins.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"2 January 2006",
	"02 January 2006",
}

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// indonesianMonths maps month names and common abbreviations to month
// numbers. Keys are lower-case.
var indonesianMonths = map[string]time.Month{
	"januari": time.January, "jan": time.January,
	"februari": time.February, "feb": time.February,
	"maret": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"mei":  time.May,
	"juni": time.June, "jun": time.June,
	"juli": time.July, "jul": time.July,
	"agustus": time.August, "agu": time.August, "agt": time.August,
	"september": time.September, "sep": time.September,
	"oktober": time.October, "okt": time.October,
	"november": time.November, "nov": time.November,
	"desember": time.December, "des": time.December,
}

var indonesianDatePattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})$`)

// ParseDate interprets raw cell text as a calendar date, trying explicit
// layouts first, then "<day> <Indonesian month> <year>", then datetime
// layouts as a final fallback.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if m := indonesianDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := indonesianMonths[strings.ToLower(m[2])]; ok {
			t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			// time.Date normalizes overflow (32 Jan -> 1 Feb); reject that.
			if t.Day() == day && t.Month() == month {
				return t, true
			}
		}
	}

	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateTime interprets raw cell text as a timestamp.
func ParseDateTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// layoutReplacer translates dd/MM/yyyy-style display patterns into Go
// reference layouts.
var layoutReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MMMM", "January",
	"MM", "01",
	"dd", "02",
	"d", "2",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// FormatDate renders a date using a dd/MM/yyyy-style pattern. The zero time
// formats as the "-" placeholder.
func FormatDate(t time.Time, pattern string) string {
	if t.IsZero() {
		return "-"
	}
	if pattern == "" {
		pattern = "dd/MM/yyyy"
	}
	return t.Format(layoutReplacer.Replace(pattern))
}

// FormatDateIndonesian renders a date with the Indonesian month name, e.g.
// "15 Mei 1999".
func FormatDateIndonesian(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	names := []string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	return fmt.Sprintf("%d %s %d", t.Day(), names[t.Month()-1], t.Year())
}
