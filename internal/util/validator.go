package util

import (
	"fmt"
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateAmount checks that an amount is positive and below the cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email: %s", email)
	}
	return nil
}

// ValidateCategory checks that a category name is present and short enough.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 40 {
		return fmt.Errorf("category too long, max 40 bytes")
	}
	return nil
}
