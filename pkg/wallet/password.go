package wallet

import "unicode"

const (
	minPasswordLength = 8
	maxPasswordLength = 1024
)

// ValidatePassword enforces the save-time password policy: 8 to 1024
// characters with at least one lowercase letter, one uppercase letter, one
// digit and one symbol. Every unmet requirement is named. Runs before any
// KDF work begins.
func ValidatePassword(password []byte) error {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, "at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		violations = append(violations, "at most 1024 characters")
	}

	var lower, upper, digit, symbol bool
	for _, r := range string(password) {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower {
		violations = append(violations, "a lowercase letter")
	}
	if !upper {
		violations = append(violations, "an uppercase letter")
	}
	if !digit {
		violations = append(violations, "a digit")
	}
	if !symbol {
		violations = append(violations, "a symbol")
	}

	if len(violations) > 0 {
		return &PasswordPolicyError{Violations: violations}
	}
	return nil
}
