package utils

import (
	"regexp"
	"strings"
)

// Accepts +1234567890 (7-15 digits) or 123-456-7890.
var phoneRegex = regexp.MustCompile(`^(\+\d{7,15}|\d{3}-\d{3}-\d{4})$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phoneRegex.MatchString(phone)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
