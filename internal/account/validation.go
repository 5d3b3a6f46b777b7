package account

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation bounds for registration input.
const (
	minNameLen     = 2
	maxNameLen     = 40
	minPasswordLen = 6
	maxPasswordLen = 64
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain. Real validation happens when mail is actually delivered.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateName checks display name bounds (2-40 characters after trimming).
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLen || len(trimmed) > maxNameLen {
		return fmt.Errorf("name must be %d-%d characters: %w", minNameLen, maxNameLen, ErrValidation)
	}
	return nil
}

// ValidateEmail checks that the address has a plausible shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		return fmt.Errorf("email address is not valid: %w", ErrValidation)
	}
	return nil
}

// ValidatePassword checks password length bounds (6-64 characters).
// The plaintext is never logged or stored.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return fmt.Errorf("password must be %d-%d characters: %w", minPasswordLen, maxPasswordLen, ErrValidation)
	}
	return nil
}

// ValidateRegistration checks all registration fields, failing on the first
// invalid one. Validation always happens before any store mutation.
func ValidateRegistration(name, email, password string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
