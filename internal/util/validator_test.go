package util

import (
	"testing"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []float64{0.01, 1.0, 100.5, 9999999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(0)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

func TestValidateAmount_Negative(t *testing.T) {
	testCases := []float64{-0.01, -100, -9999.99}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(100000000)

	if err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@c.d", "@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidateCategory_Valid(t *testing.T) {
	testCases := []string{"Alimentação", "Transporte", "Lazer", "Salário"}

	for _, category := range testCases {
		err := ValidateCategory(category)
		if err != nil {
			t.Errorf("ValidateCategory(%q) error = %v, want nil", category, err)
		}
	}
}

func TestValidateCategory_Empty(t *testing.T) {
	err := ValidateCategory("")

	if err == nil {
		t.Error("ValidateCategory(\"\") error = nil, want error")
	}
}

func TestValidateCategory_TooLong(t *testing.T) {
	longCategory := "uma categoria com um nome absurdamente longo demais para caber"

	err := ValidateCategory(longCategory)

	if err == nil {
		t.Error("ValidateCategory() with long string error = nil, want error")
	}
}
