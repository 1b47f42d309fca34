// Package validator checks the structure of Indonesian identifiers (NIK,
// NPWP, mobile phone numbers) and common contact fields. Validators report
// findings; they never panic on malformed input.
package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	digitsOnly = regexp.MustCompile(`\D`)

	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	// Indonesian mobile numbers: +62, 62, or a leading 0, then the mobile
	// prefix digit 8 and 7-11 more digits.
	phonePattern = regexp.MustCompile(`^(\+62|62|0)8\d{7,11}$`)
)

// NIKData is the decoded payload of a valid NIK.
type NIKData struct {
	Province  string `json:"province"`
	BirthDate string `json:"birthDate"` // dd-mm-yyyy
	Gender    string `json:"gender"`    // Laki-laki | Perempuan
}

// NIKResult reports a NIK validation outcome.
type NIKResult struct {
	Valid bool     `json:"valid"`
	Error string   `json:"error,omitempty"`
	Data  *NIKData `json:"data,omitempty"`
}

// ValidateNIK checks the 16-digit national identity number: a known province
// prefix, then the embedded birthdate where the day is biased by +40 for
// women. The two-digit year is read as 19xx.
func ValidateNIK(value string) NIKResult {
	digits := digitsOnly.ReplaceAllString(value, "")
	if len(digits) != 16 {
		return NIKResult{Error: fmt.Sprintf("NIK harus 16 digit, ditemukan %d", len(digits))}
	}

	province, ok := ProvinceName(digits[:2])
	if !ok {
		return NIKResult{Error: fmt.Sprintf("kode provinsi %s tidak dikenal", digits[:2])}
	}

	day := int(digits[6]-'0')*10 + int(digits[7]-'0')
	month := int(digits[8]-'0')*10 + int(digits[9]-'0')
	year := int(digits[10]-'0')*10 + int(digits[11]-'0')

	gender := "Laki-laki"
	if day > 40 {
		day -= 40
		gender = "Perempuan"
	}
	if day < 1 || day > 31 {
		return NIKResult{Error: fmt.Sprintf("tanggal lahir %d tidak valid", day)}
	}
	if month < 1 || month > 12 {
		return NIKResult{Error: fmt.Sprintf("bulan lahir %d tidak valid", month)}
	}

	return NIKResult{
		Valid: true,
		Data: &NIKData{
			Province:  province,
			BirthDate: fmt.Sprintf("%02d-%02d-%d", day, month, 1900+year),
			Gender:    gender,
		},
	}
}

// Result is the generic outcome for the remaining validators.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateNPWP accepts the 15-digit legacy taxpayer number or the 16-digit
// format introduced in 2024. The check is intentionally structural only; the
// published checksum is not verified.
func ValidateNPWP(value string) Result {
	digits := digitsOnly.ReplaceAllString(value, "")
	if len(digits) != 15 && len(digits) != 16 {
		return Result{Error: fmt.Sprintf("NPWP harus 15 atau 16 digit, ditemukan %d", len(digits))}
	}
	return Result{Valid: true}
}

// ValidateEmail checks the address shape.
func ValidateEmail(value string) Result {
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return Result{Error: "format email tidak valid"}
	}
	return Result{Valid: true}
}

// ValidatePhoneID checks for an Indonesian mobile number in any accepted
// leading form (08.., 62.., +62..). Separators are stripped first.
func ValidatePhoneID(value string) Result {
	if !phonePattern.MatchString(stripPhoneSeparators(value)) {
		return Result{Error: "format nomor telepon tidak valid"}
	}
	return Result{Valid: true}
}

// NormalizePhoneID rewrites an accepted phone form to the canonical +62
// representation. It reports false when the input matches none of the
// recognized leading forms.
func NormalizePhoneID(value string) (string, bool) {
	s := stripPhoneSeparators(value)
	if !phonePattern.MatchString(s) {
		return "", false
	}
	switch {
	case strings.HasPrefix(s, "+62"):
		return s, true
	case strings.HasPrefix(s, "62"):
		return "+" + s, true
	case strings.HasPrefix(s, "0"):
		return "+62" + s[1:], true
	}
	return "", false
}

func stripPhoneSeparators(value string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(value) {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
