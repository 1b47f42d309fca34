package validator

import "testing"

func TestValidateNIK(t *testing.T) {
	res := ValidateNIK("3201011505990001")
	if !res.Valid {
		t.Fatalf("expected valid NIK, got error %q", res.Error)
	}
	if res.Data.Province != "Jawa Barat" {
		t.Fatalf("province = %q", res.Data.Province)
	}
	if res.Data.BirthDate != "15-05-1999" {
		t.Fatalf("birth date = %q", res.Data.BirthDate)
	}
	if res.Data.Gender != "Laki-laki" {
		t.Fatalf("gender = %q", res.Data.Gender)
	}
}

func TestValidateNIKFemale(t *testing.T) {
	// day 45 encodes day 5 with the female +40 bias
	res := ValidateNIK("3174014505990002")
	if !res.Valid {
		t.Fatalf("expected valid NIK, got error %q", res.Error)
	}
	if res.Data.Gender != "Perempuan" {
		t.Fatalf("gender = %q", res.Data.Gender)
	}
	if res.Data.BirthDate != "05-05-1999" {
		t.Fatalf("birth date = %q", res.Data.BirthDate)
	}
	if res.Data.Province != "DKI Jakarta" {
		t.Fatalf("province = %q", res.Data.Province)
	}
}

func TestValidateNIKRejects(t *testing.T) {
	cases := []string{
		"12345",            // too short
		"0001011505990001", // unknown province
		"3201013905990001", // day 39 invalid for either gender
		"3201011513990001", // month 13
	}
	for _, in := range cases {
		if res := ValidateNIK(in); res.Valid {
			t.Fatalf("ValidateNIK(%q) unexpectedly valid", in)
		}
	}
}

func TestValidateNPWP(t *testing.T) {
	if res := ValidateNPWP("012345678901234"); !res.Valid {
		t.Fatalf("15-digit NPWP rejected: %s", res.Error)
	}
	if res := ValidateNPWP("01.234.567.8-901.234"); !res.Valid {
		t.Fatalf("punctuated NPWP rejected: %s", res.Error)
	}
	if res := ValidateNPWP("0123456789012345"); !res.Valid {
		t.Fatalf("16-digit NPWP rejected: %s", res.Error)
	}
	if res := ValidateNPWP("12345678901234"); res.Valid {
		t.Fatal("14-digit NPWP accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	if res := ValidateEmail("budi.santoso@example.co.id"); !res.Valid {
		t.Fatalf("valid email rejected: %s", res.Error)
	}
	for _, in := range []string{"not-an-email", "a@b", "@example.com"} {
		if res := ValidateEmail(in); res.Valid {
			t.Fatalf("ValidateEmail(%q) unexpectedly valid", in)
		}
	}
}

func TestValidatePhoneID(t *testing.T) {
	valid := []string{
		"081234567890",
		"0812-3456-7890",
		"+62 812 3456 7890",
		"6281234567890",
	}
	for _, in := range valid {
		if res := ValidatePhoneID(in); !res.Valid {
			t.Fatalf("ValidatePhoneID(%q) rejected: %s", in, res.Error)
		}
	}

	invalid := []string{
		"0215550123", // landline, not mobile
		"12345",
		"+1 555 0100",
	}
	for _, in := range invalid {
		if res := ValidatePhoneID(in); res.Valid {
			t.Fatalf("ValidatePhoneID(%q) unexpectedly valid", in)
		}
	}
}

func TestNormalizePhoneID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"081234567890", "+6281234567890"},
		{"0812-3456-7890", "+6281234567890"},
		{"6281234567890", "+6281234567890"},
		{"+6281234567890", "+6281234567890"},
	}
	for _, tc := range cases {
		got, ok := NormalizePhoneID(tc.in)
		if !ok {
			t.Fatalf("NormalizePhoneID(%q) failed", tc.in)
		}
		if got != tc.want {
			t.Fatalf("NormalizePhoneID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, ok := NormalizePhoneID("0215550123"); ok {
		t.Fatal("landline should not normalize")
	}
}
