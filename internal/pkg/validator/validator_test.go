package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "year", Message: "required"},
	}
	got := errs.Error()
	want := "month: invalid; year: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "year", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"month": "invalid", "year": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "08:00", "17:05", "23:59"}
	invalid := []string{"8:00", "24:00", "12:60", "12:5", "", "12:00:00"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidDocumentNumber(t *testing.T) {
	valid := []string{"12345678", "LP-1234567", "ZK-00042"}
	invalid := []string{"1234", "12 345 678", "", "123456789012345678901"}
	for _, s := range valid {
		if !IsValidDocumentNumber(s) {
			t.Errorf("IsValidDocumentNumber(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidDocumentNumber(s) {
			t.Errorf("IsValidDocumentNumber(%q) = true, want false", s)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"admin", "op.maria", "caja_1", "a-b"}
	invalid := []string{"", "with space", "ñandu", "x@y"}
	for _, s := range valid {
		if !IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = true, want false", s)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	cases := []struct {
		month, year int
		fields      []string
	}{
		{5, 2024, nil},
		{1, MinReportYear, nil},
		{12, MaxReportYear, nil},
		{0, 2024, []string{"month"}},
		{13, 2024, []string{"month"}},
		{5, 1999, []string{"year"}},
		{-1, 99999, []string{"month", "year"}},
	}
	for _, c := range cases {
		errs := ValidatePeriod(c.month, c.year)
		if len(errs) != len(c.fields) {
			t.Errorf("ValidatePeriod(%d, %d) returned %d errors, want %d", c.month, c.year, len(errs), len(c.fields))
			continue
		}
		for i, f := range c.fields {
			if errs[i].Field != f {
				t.Errorf("ValidatePeriod(%d, %d)[%d].Field = %q, want %q", c.month, c.year, i, errs[i].Field, f)
			}
		}
	}
}
