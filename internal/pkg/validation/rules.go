package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidateEmail checks the email address format
func ValidateEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidatePassword enforces the password policy: minimum length plus at least
// one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one number")
	}

	return nil
}

// ValidateName checks a person name length
func ValidateName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
